package core

// Surface is a passive paint target. Games hand it a read-only snapshot once
// per display frame; it never mutates simulation state.
type Surface[S any] interface {
	Present(snap S)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc[S any] func(snap S)

// Present implements Surface.
func (f SurfaceFunc[S]) Present(snap S) {
	f(snap)
}
