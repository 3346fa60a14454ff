// Package hosttest provides an in-process fake of the native rendering
// host for tests.
//
// The fake records every command in order and answers creation calls from
// a deterministic id sequence, so tests can assert on the exact command
// stream a mutation produced:
//
//	h := hosttest.New()
//	sess := scene.NewSession(h)
//	...
//	h.ExpectCalls(t, "CreateContainerInstance(box)", "InsertChild(root, n1, -1)")
package hosttest

import (
	"fmt"
	"strings"
	"testing"
)

// Call is one recorded host command.
type Call struct {
	// Method is the host method name.
	Method string

	// Args are the call arguments in order.
	Args []any
}

// String renders the call as "Method(arg1, arg2)".
func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return c.Method + "(" + strings.Join(parts, ", ") + ")"
}

// Fake is a recording host.Host implementation. It is not safe for
// concurrent use; the mirror's dispatch model is single-threaded.
type Fake struct {
	// Calls holds every recorded command in issue order.
	Calls []Call

	// RootID is returned by RootInstanceID. Defaults to "root".
	RootID string

	// Err, when set, is returned by every subsequent call. Used for
	// transport failure injection.
	Err error

	// InvokeResult is returned by InvokeInstanceMethod.
	InvokeResult any

	nextID int
}

// New returns a fake host with the default root id.
func New() *Fake {
	return &Fake{RootID: "root"}
}

func (f *Fake) record(method string, args ...any) {
	f.Calls = append(f.Calls, Call{Method: method, Args: args})
}

// CreateContainerInstance implements host.Host.
func (f *Fake) CreateContainerInstance(typ string) (string, error) {
	f.record("CreateContainerInstance", typ)
	if f.Err != nil {
		return "", f.Err
	}
	f.nextID++
	return fmt.Sprintf("n%d", f.nextID), nil
}

// CreateTextInstance implements host.Host.
func (f *Fake) CreateTextInstance(text string) (string, error) {
	f.record("CreateTextInstance", text)
	if f.Err != nil {
		return "", f.Err
	}
	f.nextID++
	return fmt.Sprintf("n%d", f.nextID), nil
}

// InsertChild implements host.Host.
func (f *Fake) InsertChild(parentID, childID string, index int) error {
	f.record("InsertChild", parentID, childID, index)
	return f.Err
}

// RemoveChild implements host.Host.
func (f *Fake) RemoveChild(parentID, childID string) error {
	f.record("RemoveChild", parentID, childID)
	return f.Err
}

// SetProperty implements host.Host.
func (f *Fake) SetProperty(id, key string, value any) error {
	f.record("SetProperty", id, key, value)
	return f.Err
}

// SetTextValue implements host.Host.
func (f *Fake) SetTextValue(id, text string) error {
	f.record("SetTextValue", id, text)
	return f.Err
}

// InvokeInstanceMethod implements host.Host.
func (f *Fake) InvokeInstanceMethod(id, method string, args ...any) (any, error) {
	recorded := append([]any{id, method}, args...)
	f.record("InvokeInstanceMethod", recorded...)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.InvokeResult, nil
}

// RootInstanceID implements host.Host.
func (f *Fake) RootInstanceID() (string, error) {
	f.record("RootInstanceID")
	if f.Err != nil {
		return "", f.Err
	}
	return f.RootID, nil
}

// FinalizeCommit implements host.Host.
func (f *Fake) FinalizeCommit() error {
	f.record("FinalizeCommit")
	return f.Err
}

// Reset clears the recorded calls, keeping the id sequence.
func (f *Fake) Reset() {
	f.Calls = nil
}

// CallStrings returns the recorded calls rendered via Call.String.
func (f *Fake) CallStrings() []string {
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.String()
	}
	return out
}

// ExpectCalls asserts the exact recorded command stream.
func (f *Fake) ExpectCalls(t *testing.T, want ...string) {
	t.Helper()
	got := f.CallStrings()
	if len(got) != len(want) {
		t.Fatalf("recorded %d calls, want %d:\n got: %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// LastCall returns the most recent recorded call, or a zero Call.
func (f *Fake) LastCall() Call {
	if len(f.Calls) == 0 {
		return Call{}
	}
	return f.Calls[len(f.Calls)-1]
}
