// Command primes lists, tests, factorizes and generates prime numbers.
//
//	primes [-v] [-metrics] list [-gen sieve] <upper bound>
//	primes test [-rounds 10] <n>
//	primes factor [-gen sieve] [--] <n>
//	primes random [-pool file] <bits>
//	primes sample [-gen sieve] <start> <stop> <count>
//	primes fill -pool file <bits> <count>
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/briandowns/spinner"
	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/primes"
	"github.com/privacybydesign/primes/big"
	"github.com/privacybydesign/primes/generator"
	"github.com/privacybydesign/primes/pool"
)

var errUsage = errors.New("usage: primes [-v] [-metrics] list|test|factor|random|sample|fill [flags] args")

func main() {
	verbose := flag.Bool("v", false, "log debug output")
	dumpMetrics := flag.Bool("metrics", false, "print counters after the command")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	primes.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, flag.Args(), os.Stdout)
	if *dumpMetrics {
		metrics.WritePrometheus(os.Stderr, false)
	}
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, args := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	genName := fs.String("gen", generator.NameSegmentedSieve, "generator strategy: mod6, trial or sieve")
	rounds := fs.Int("rounds", primes.DefaultRounds, "Miller-Rabin rounds")
	poolFile := fs.String("pool", "", "bolt pool file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	args = fs.Args()

	switch cmd {
	case "list":
		if len(args) != 1 {
			return errUsage
		}
		ub, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return errors.WrapPrefix(err, "upper bound", 0)
		}
		g, err := generator.New(*genName)
		if err != nil {
			return err
		}
		primes.EachPrime(boundedBy(g, ub), func(p uint64) bool {
			fmt.Fprintln(out, p)
			return ctx.Err() == nil
		})
		return ctx.Err()

	case "test":
		if len(args) != 1 {
			return errUsage
		}
		n, err := parseInt(args[0])
		if err != nil {
			return err
		}
		if primes.IsProbablePrime(n, *rounds) {
			fmt.Fprintf(out, "%s is probably prime\n", n)
		} else {
			fmt.Fprintf(out, "%s is composite\n", n)
		}
		return nil

	case "factor":
		if len(args) != 1 {
			return errUsage
		}
		n, err := parseInt(args[0])
		if err != nil {
			return err
		}
		g, err := generator.New(*genName)
		if err != nil {
			return err
		}
		l, err := primes.Factorize(n, g)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s = %s\n", n, l)
		return nil

	case "random":
		if len(args) != 1 {
			return errUsage
		}
		bits, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return errors.WrapPrefix(err, "bit length", 0)
		}
		p, err := randomPrime(ctx, *poolFile, uint(bits))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, p)
		return nil

	case "sample":
		if len(args) != 3 {
			return errUsage
		}
		var bounds [2]uint64
		for i, a := range args[:2] {
			v, err := strconv.ParseUint(a, 10, 64)
			if err != nil {
				return errors.WrapPrefix(err, "sample bound", 0)
			}
			bounds[i] = v
		}
		count, err := parseCount(args[2])
		if err != nil {
			return err
		}
		g, err := generator.New(*genName)
		if err != nil {
			return err
		}
		sample, err := primes.RandomPrimesInRange(bounds[0], bounds[1], count, g)
		if err != nil {
			return err
		}
		for _, p := range sample {
			fmt.Fprintln(out, p)
		}
		return nil

	case "fill":
		if len(args) != 2 || *poolFile == "" {
			return errUsage
		}
		bits, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return errors.WrapPrefix(err, "bit length", 0)
		}
		count, err := parseCount(args[1])
		if err != nil {
			return err
		}
		return fill(ctx, *poolFile, uint(bits), count, out)

	default:
		return errUsage
	}
}

func boundedBy(g generator.Generator, ub uint64) generator.Generator {
	g.SetUpperBound(ub)
	return g
}

func parseInt(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, errors.Errorf("not an integer: %q", s)
	}
	return n, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.WrapPrefix(err, "count", 0)
	}
	if n <= 0 {
		return 0, errors.Errorf("count must be positive, got %d", n)
	}
	return n, nil
}

func randomPrime(ctx context.Context, poolFile string, bits uint) (*big.Int, error) {
	if poolFile != "" {
		p, err := pool.OpenBoltPool(poolFile)
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return pool.RandomPrimeFromPool(p, bits)
	}

	s := newSpinner(fmt.Sprintf(" searching a %d-bit prime", bits))
	s.Start()
	defer s.Stop()
	ps, err := primes.GeneratePrimes(ctx, bits, 1)
	if err != nil {
		return nil, err
	}
	return ps[0], nil
}

func fill(ctx context.Context, poolFile string, bits uint, count int, out io.Writer) error {
	p, err := pool.OpenBoltPool(poolFile)
	if err != nil {
		return err
	}
	defer p.Close()

	s := newSpinner(fmt.Sprintf(" generating %d primes of %d bits", count, bits))
	s.Start()
	err = pool.Fill(ctx, p, rand.Reader, bits, count)
	s.Stop()
	if err != nil {
		return err
	}

	stats, err := p.StatsJSON(bits)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(stats))
	return nil
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	return s
}
