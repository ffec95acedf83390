package runtime

import (
	"fmt"
)

// This module implements a stack of evaluation frames.
// Every node evaluation opens a frame and closes it when done. The id of a
// frame is its scope id; ids strictly increase with nesting depth. Frames are
// opened and closed in strict LIFO order. Sibling frames entered one after
// the other reuse the same id, which is only sound because evaluation is
// strictly sequential: no two frames are ever open concurrently.

// Frame is an open evaluation frame.
type Frame struct {
	ID     ScopeID
	Parent *Frame
}

func (f *Frame) String() string {
	return fmt.Sprintf("<frame %d>", f.ID)
}

// IsRoot is a predicate: Is this the outermost open frame?
func (f *Frame) IsRoot() bool {
	return f.Parent == nil
}

// ---------------------------------------------------------------------------

// FrameStack is a (call-)stack of evaluation frames.
type FrameStack struct {
	next     ScopeID // id of the next frame to open
	frameTOS *Frame
	depth    int
}

// NewFrameStack creates an empty frame stack. The first frame will receive
// scope id 1, as scope 0 is reserved for globals.
func NewFrameStack() *FrameStack {
	return &FrameStack{next: 1}
}

// Current returns the scope id the next frame would receive, i.e. the scope
// evaluation currently happens in.
func (fs *FrameStack) Current() ScopeID {
	return fs.next
}

// Top gets the current frame of the stack (TOS), or nil.
func (fs *FrameStack) Top() *Frame {
	return fs.frameTOS
}

// Depth is the number of open frames.
func (fs *FrameStack) Depth() int {
	return fs.depth
}

// PushNewFrame opens a new frame as TOS. Its id is greater than the id of
// any frame still open.
func (fs *FrameStack) PushNewFrame() *Frame {
	f := &Frame{
		ID:     fs.next,
		Parent: fs.frameTOS,
	}
	fs.next++
	fs.frameTOS = f
	fs.depth++
	return f
}

// PopFrame closes the frame with the given id, which has to be TOS.
// Afterwards the current scope is id again.
func (fs *FrameStack) PopFrame(id ScopeID) *Frame {
	if fs.frameTOS == nil {
		panic("attempt to pop frame from empty call stack")
	}
	if fs.frameTOS.ID != id {
		panic(fmt.Sprintf("attempt to pop frame %d, but top of stack is %d", id, fs.frameTOS.ID))
	}
	f := fs.frameTOS
	fs.frameTOS = f.Parent
	fs.next = id
	fs.depth--
	return f
}

// Unwind closes every open frame and resets the scope counter.
func (fs *FrameStack) Unwind() {
	fs.frameTOS = nil
	fs.next = 1
	fs.depth = 0
}
