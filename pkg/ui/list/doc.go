// Package list implements the resource list: a one-shot fetch that moves
// from loading to either success or failure, and the view of each state.
//
//	l := list.New(resources, list.WithType(model.ResourceTypeReflection))
//	l.Mount(ctx)
//	view := l.View()
//
// The raw fetch error is logged; visitors only ever see MessageError.
package list
