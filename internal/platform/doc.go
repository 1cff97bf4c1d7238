// Package platform provides the cross-platform filesystem primitives the
// template copy needs beyond plain file I/O: recreating symlinks (with a copy
// fallback on Windows when symlinks are not permitted) and applying
// permission bits, which is a no-op on Windows.
package platform
