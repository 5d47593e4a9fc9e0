// Package windows implements the platform backends for Windows using
// user32/gdi32 via lazily-loaded DLLs. It registers itself with the
// platform package at init time; on other operating systems this package
// is excluded by build tags and platform.NewProvider returns ErrUnsupported.
package windows
