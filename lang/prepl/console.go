package main

import (
	"bytes"
	"io"

	"github.com/chzyer/readline"
)

// console connects the print and input built-ins to the line editor.
// Output is passed on line by line; an unterminated last line is held back
// and becomes the prompt of a subsequent input.
type console struct {
	rl      *readline.Instance
	prompt  string // prompt to restore after input
	partial []byte
	rest    []byte
}

func (c *console) Write(p []byte) (int, error) {
	c.partial = append(c.partial, p...)
	if i := bytes.LastIndexByte(c.partial, '\n'); i >= 0 {
		if _, err := c.rl.Stdout().Write(c.partial[:i+1]); err != nil {
			return 0, err
		}
		c.partial = append(c.partial[:0], c.partial[i+1:]...)
	}
	return len(p), nil
}

// Flush writes out a pending unterminated line.
func (c *console) Flush() {
	if len(c.partial) == 0 {
		return
	}
	c.partial = append(c.partial, '\n')
	c.rl.Stdout().Write(c.partial)
	c.partial = c.partial[:0]
}

func (c *console) Read(p []byte) (int, error) {
	if len(c.rest) == 0 {
		c.rl.SetPrompt(string(c.partial))
		c.partial = c.partial[:0]
		line, err := c.rl.Readline()
		c.rl.SetPrompt(c.prompt)
		if err != nil { // io.EOF or interrupt
			return 0, io.EOF
		}
		c.rest = []byte(line + "\n")
	}
	n := copy(p, c.rest)
	c.rest = c.rest[n:]
	return n, nil
}
