// Package command runs the text front end of the shop: one command per line,
// one result line (or rendering) per command.
package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"OnlineShop/internal/shop"
)

const (
	closeCommand = "Close"

	// maxLineBytes bounds a single command line. Longer lines are reported
	// and skipped.
	maxLineBytes = 64 << 10
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArguments      = errors.New("bad arguments")
	ErrLineTooLong    = errors.New("line too long")
)

type handler struct {
	args int
	run  func(c *shop.Controller, args []string) (string, error)
}

var commands = map[string]handler{
	"AddComputer":      {5, addComputer},
	"AddComponent":     {8, addComponent},
	"RemoveComponent":  {2, removeComponent},
	"AddPeripheral":    {8, addPeripheral},
	"RemovePeripheral": {2, removePeripheral},
	"BuyComputer":      {1, buyComputer},
	"BuyBest":          {1, buyBest},
	"GetComputerData":  {1, getComputerData},
}

type Interpreter struct {
	shop    *shop.Controller
	log     *zap.Logger
	maxLine int
}

func New(c *shop.Controller, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{shop: c, log: log, maxLine: maxLineBytes}
}

// Execute runs a single command line and returns its output.
func (in *Interpreter) Execute(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}

	name, args := fields[0], fields[1:]
	h, ok := commands[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(args) != h.args {
		return "", fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArguments, name, h.args, len(args))
	}
	return h.run(in.shop, args)
}

// Run executes lines from r until EOF, Close or ctx is done. Command errors,
// including lines of maxLineBytes or more, are written to w as the command's
// result; only I/O errors end the loop with an error.
func (in *Interpreter) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	br := bufio.NewReaderSize(r, in.maxLine)
	for {
		raw, readErr := in.readLine(br)
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil && !errors.Is(readErr, ErrLineTooLong) {
			return readErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var out string
		if readErr != nil {
			in.log.Debug("line skipped", zap.Error(readErr))
			out = readErr.Error()
		} else {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if line == closeCommand {
				return nil
			}

			res, err := in.Execute(line)
			if err != nil {
				in.log.Debug("command failed", zap.String("line", line), zap.Error(err))
				res = err.Error()
			}
			out = res
		}

		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
}

// readLine returns the next line without its terminator. A line that does
// not fit the reader's buffer is consumed to its end and reported as
// ErrLineTooLong.
func (in *Interpreter) readLine(br *bufio.Reader) (string, error) {
	line, isPrefix, err := br.ReadLine()
	if err != nil {
		return "", err
	}
	if !isPrefix {
		return string(line), nil
	}

	for isPrefix && err == nil {
		_, isPrefix, err = br.ReadLine()
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return "", fmt.Errorf("%w: limit is %d bytes", ErrLineTooLong, in.maxLine)
}

func addComputer(c *shop.Controller, a []string) (string, error) {
	id, err := parseInt("id", a[1])
	if err != nil {
		return "", err
	}
	price, err := parseDecimal("price", a[4])
	if err != nil {
		return "", err
	}

	res, err := c.AddComputer(shop.ComputerSpec{
		Variant:      a[0],
		ID:           id,
		Manufacturer: a[2],
		Model:        a[3],
		Price:        price,
	})
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// parsePart reads "computerId id type manufacturer model price performance"
// which AddComponent and AddPeripheral share.
func parsePart(a []string) (shop.PartSpec, error) {
	computerID, err := parseInt("computer id", a[0])
	if err != nil {
		return shop.PartSpec{}, err
	}
	id, err := parseInt("id", a[1])
	if err != nil {
		return shop.PartSpec{}, err
	}
	price, err := parseDecimal("price", a[5])
	if err != nil {
		return shop.PartSpec{}, err
	}
	perf, err := parseDecimal("performance", a[6])
	if err != nil {
		return shop.PartSpec{}, err
	}
	return shop.PartSpec{
		ComputerID:   computerID,
		ID:           id,
		Variant:      a[2],
		Manufacturer: a[3],
		Model:        a[4],
		Price:        price,
		Performance:  perf,
	}, nil
}

func addComponent(c *shop.Controller, a []string) (string, error) {
	part, err := parsePart(a)
	if err != nil {
		return "", err
	}
	generation, err := parseInt("generation", a[7])
	if err != nil {
		return "", err
	}

	res, err := c.AddComponent(shop.ComponentSpec{PartSpec: part, Generation: generation})
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func addPeripheral(c *shop.Controller, a []string) (string, error) {
	part, err := parsePart(a)
	if err != nil {
		return "", err
	}

	res, err := c.AddPeripheral(shop.PeripheralSpec{PartSpec: part, ConnectionType: a[7]})
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func removeComponent(c *shop.Controller, a []string) (string, error) {
	computerID, err := parseInt("computer id", a[1])
	if err != nil {
		return "", err
	}
	res, err := c.RemoveComponent(a[0], computerID)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func removePeripheral(c *shop.Controller, a []string) (string, error) {
	computerID, err := parseInt("computer id", a[1])
	if err != nil {
		return "", err
	}
	res, err := c.RemovePeripheral(a[0], computerID)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func buyComputer(c *shop.Controller, a []string) (string, error) {
	id, err := parseInt("id", a[0])
	if err != nil {
		return "", err
	}
	snap, err := c.BuyComputer(id)
	if err != nil {
		return "", err
	}
	return snap.String(), nil
}

func buyBest(c *shop.Controller, a []string) (string, error) {
	budget, err := parseDecimal("budget", a[0])
	if err != nil {
		return "", err
	}
	snap, err := c.BuyBestComputer(budget)
	if err != nil {
		return "", err
	}
	return snap.String(), nil
}

func getComputerData(c *shop.Controller, a []string) (string, error) {
	id, err := parseInt("id", a[0])
	if err != nil {
		return "", err
	}
	snap, err := c.GetComputerData(id)
	if err != nil {
		return "", err
	}
	return snap.String(), nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrArguments, field, s)
	}
	return n, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q is not a number", ErrArguments, field, s)
	}
	return d, nil
}
