package htmltags

import "github.com/gosubs/subtitles/subtitle"

// stateStack is the nested-tag analogue of the ASS engine's flat style
// accumulator. The bottom frame is always the zero-initialized state;
// it is never popped.
type stateStack struct {
	frames []*subtitle.InlineStyle
}

func newStack() *stateStack {
	return &stateStack{frames: []*subtitle.InlineStyle{{}}}
}

func (s *stateStack) top() *subtitle.InlineStyle {
	return s.frames[len(s.frames)-1]
}

func (s *stateStack) push(next *subtitle.InlineStyle) {
	s.frames = append(s.frames, next)
}

// pop removes the top frame, iff doing so would not empty the stack.
func (s *stateStack) pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func boolField(v bool) *int {
	n := 0
	if v {
		n = 1
	}
	return &n
}

func pushBoolFlag(top *subtitle.InlineStyle, set func(*subtitle.InlineStyle)) *subtitle.InlineStyle {
	c := top.Clone()
	set(c)
	return c
}

// pushTransparent copies top unchanged — used for structural tags
// (voice/class/lang/unrecognized) that must still balance a stack frame
// against their closing tag, but carry no style of their own.
func pushTransparent(top *subtitle.InlineStyle) *subtitle.InlineStyle {
	return top.Clone()
}
