package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/ftlinear/pkg/errors"
)

// prompter reads answers line by line. Invalid answers are asked again in
// a loop; io.EOF ends the prompt.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func newPrompter(r *bufio.Reader, w io.Writer) *prompter {
	return &prompter{r: r, w: w}
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.w, prompt)
	s, err := p.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && s != "" {
			return strings.TrimSpace(s), nil
		}
		if err == io.EOF {
			fmt.Fprintln(p.w)
			return "", io.EOF
		}
		return "", errors.Wrap(err, "read input")
	}
	return strings.TrimSpace(s), nil
}

// float asks until the answer parses and passes check. With keep set, an
// empty answer returns def.
func (p *prompter) float(prompt string, def float64, keep bool, check func(float64) error) (float64, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		if s == "" && keep {
			return def, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			fmt.Fprintf(p.w, "%q is not a number.\n", s)
			continue
		}
		if check != nil {
			if err := check(v); err != nil {
				fmt.Fprintln(p.w, err)
				continue
			}
		}
		return v, nil
	}
}

// integer asks until the answer is a positive integer. An empty answer
// returns def.
func (p *prompter) integer(prompt string, def int) (int, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		if s == "" {
			return def, nil
		}
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			fmt.Fprintf(p.w, "%q is not a positive integer.\n", s)
			continue
		}
		return v, nil
	}
}

// mileageProblem returns why km is not a usable mileage, or "".
func mileageProblem(km float64) string {
	switch {
	case math.IsNaN(km) || math.IsInf(km, 0):
		return "must be a finite number"
	case km < 0:
		return "must not be negative"
	}
	return ""
}

func checkMileage(km float64) error {
	if reason := mileageProblem(km); reason != "" {
		return errors.NewValueError("mileage", reason)
	}
	return nil
}

func checkLearningRate(lr float64) error {
	if lr <= 0 {
		return errors.NewValueError("learning rate", "must be positive")
	}
	return nil
}
