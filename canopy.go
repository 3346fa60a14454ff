// Package canopy provides the public API for the canopy scene-graph
// mirror.
//
// This is the recommended import for most applications:
//
//	import "github.com/canopy-ui/canopy"
//
// Usage:
//
//	session := canopy.NewSession(myHost)
//	root, _ := session.Root()
//	btn, _ := session.CreateContainer("button", canopy.Props{
//	    "border":  "1px solid red",
//	    "onClick": func(ev *canopy.MouseEvent) { ... },
//	})
//	root.AppendChild(btn)
//	session.FinalizeCommit()
//
//	router := canopy.NewRouter(session)
//	router.DispatchViewEvent(id, eventType, raw)
package canopy

import (
	"github.com/canopy-ui/canopy/pkg/dispatch"
	"github.com/canopy-ui/canopy/pkg/host"
	"github.com/canopy-ui/canopy/pkg/scene"
	"github.com/canopy-ui/canopy/pkg/style"
)

// =============================================================================
// Tree (re-export from pkg/scene)
// =============================================================================

// Session owns one mirrored tree and its node registry.
type Session = scene.Session

// Node is one mirrored tree node, container or text.
type Node = scene.Node

// Props is the property map passed at container creation.
type Props = scene.Props

// Handle is the capability handed to ref callbacks.
type Handle = scene.Handle

// RefFunc receives a Handle when bound via the "ref" property.
type RefFunc = scene.RefFunc

// Host is the command surface a native rendering host implements.
type Host = host.Host

// NewSession creates a session bound to a native host.
var NewSession = scene.NewSession

// Session options.
var (
	WithColorFunc    = scene.WithColorFunc
	WithGradientFunc = scene.WithGradientFunc
	WithMacro        = scene.WithMacro
	WithLogger       = scene.WithLogger
)

// =============================================================================
// Styling (re-export from pkg/style)
// =============================================================================

// BorderState is the per-node border model: width, radius, color, and
// style quads.
type BorderState = style.BorderState

// ValidationError reports a rejected style value.
type ValidationError = style.ValidationError

// IsValidation reports whether err is a style validation failure.
var IsValidation = style.IsValidation

// =============================================================================
// Events (re-export from pkg/dispatch)
// =============================================================================

// Router routes host-originated events into the tree.
type Router = dispatch.Router

// RawEvent is the payload delivered by the native host.
type RawEvent = dispatch.RawEvent

// SyntheticEvent is the typed event passed to handlers.
type SyntheticEvent = dispatch.SyntheticEvent

// Event, MouseEvent, and KeyboardEvent are the handler event types.
type (
	Event         = dispatch.Event
	MouseEvent    = dispatch.MouseEvent
	KeyboardEvent = dispatch.KeyboardEvent
)

// NewRouter creates an event router bound to a session.
var NewRouter = dispatch.NewRouter

// Router options.
var (
	WithMiddleware    = dispatch.WithMiddleware
	WithSynthesisHook = dispatch.WithSynthesisHook
)
