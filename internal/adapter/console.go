package adapter

import (
	"bufio"
	"fmt"
	"io"
)

// Console is the strictly single-threaded adapter: send writes to
// standard output, receive blocks reading one line from standard input.
type Console struct {
	out     io.Writer
	scanner *bufio.Scanner
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{out: out, scanner: bufio.NewScanner(in)}
}

func (c *Console) Send(text string) {
	fmt.Fprintln(c.out, text)
}

// Receive reads one line. End-of-input (the user closing stdin) is
// treated the same as the explicit EXIT sentinel.
func (c *Console) Receive() string {
	if !c.scanner.Scan() {
		return Exit
	}
	return c.scanner.Text()
}
