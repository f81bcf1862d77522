package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errQuit = errors.New("quit")

// console asks operator questions.
type console struct {
	in  *bufio.Scanner
	out io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// ask prints question and returns trimmed answer. Closed input is reported as errQuit.
func (c *console) ask(question string) (string, error) {
	fmt.Fprint(c.out, question)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("can't read answer: %w", err)
		}
		return "", errQuit
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// askCount asks for positive number or "all" until valid answer is given.
// "all" is returned as max. "q" returns errQuit when quit is allowed.
func (c *console) askCount(question string, max int, quit bool) (int, error) {
	for {
		answer, err := c.ask(question)
		if err != nil {
			return 0, err
		}

		switch strings.ToLower(answer) {
		case "all":
			return max, nil
		case "q":
			if quit {
				return 0, errQuit
			}
		default:
			if n, err := strconv.Atoi(answer); err == nil && n > 0 {
				return min(n, max), nil
			}
		}

		c.printf("Enter a positive number or \"all\".\n")
	}
}
