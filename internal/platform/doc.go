// Package platform holds the static table of supported cold-email platforms.
//
// Each platform is described by a [Descriptor]: its key, display name,
// authentication style, default base URL and command counts. These are
// compile-time data and cost nothing to list. The command catalog itself is
// built lazily by [Descriptor.Module] the first time a platform is used and
// cached for the life of the process.
//
// # Usage
//
//	reg := platform.Default()
//	d, err := reg.Get("smartlead")
//	if err != nil {
//	    return err // *api.Error of kind NotFound
//	}
//	cmd, ok := d.Module().Lookup("campaigns")
//
// # Thread Safety
//
// A [Registry] never changes after construction. Module loading is guarded
// by [sync.OnceValue], so concurrent first uses build the catalog once.
package platform
