package phyloxml

import "sync"

// Namespace is the phyloXML vocabulary namespace.
const Namespace = "http://www.phyloxml.org"

// XSNamespace is the XML Schema namespace, kept registered alongside the
// vocabulary prefix.
const XSNamespace = "http://www.w3.org/2001/XMLSchema"

var (
	prefixMu sync.Mutex
	prefixes = map[string]string{
		Namespace:   "phy",
		XSNamespace: "xs",
	}
)

// RegisterNamespace binds a prefix to a namespace URI for use when writing.
// Bindings are process-wide and should be registered once, before any write;
// "phy" and "xs" are pre-registered. Namespaces written without a registered
// prefix get generated ns0, ns1, ... prefixes.
func RegisterNamespace(prefix, uri string) {
	prefixMu.Lock()
	defer prefixMu.Unlock()
	prefixes[uri] = prefix
}

// registeredPrefixes snapshots the binding table for one write.
func registeredPrefixes() map[string]string {
	prefixMu.Lock()
	defer prefixMu.Unlock()
	out := make(map[string]string, len(prefixes))
	for uri, prefix := range prefixes {
		out[uri] = prefix
	}
	return out
}
