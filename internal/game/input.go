package game

import "image/color"

// InputBuffer holds the answer being typed.
type InputBuffer struct {
	Position Vec
	text     []rune
}

func NewInputBuffer(pos Vec) *InputBuffer {
	return &InputBuffer{Position: pos}
}

func (b *InputBuffer) Append(s string) { b.text = append(b.text, []rune(s)...) }

// Backspace drops the last character, if any.
func (b *InputBuffer) Backspace() {
	if len(b.text) > 0 {
		b.text = b.text[:len(b.text)-1]
	}
}

func (b *InputBuffer) Clear() { b.text = b.text[:0] }

func (b *InputBuffer) Text() string { return string(b.text) }

func (b *InputBuffer) Draw(dst Surface) {
	dst.DrawText(b.Text(), b.Position, TextStyle{Align: AlignCenter, Color: color.White, Size: 15})
}
