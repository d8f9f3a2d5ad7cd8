// Package surface provides render target provisioning for the compositor.
//
// A Surface is a device-pixel framebuffer together with the DPI it was
// sized for. The built-in ImageSurface renders to a CPU pixmap; other
// providers can be registered through the provider registry and are
// selected by priority and availability.
//
// Sizes at this layer are device pixels. Conversion from logical units
// happens exactly once, through PixelSizeFromLogical, so that every
// consumer rounds the same way.
package surface
