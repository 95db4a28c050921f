// Copyright 2026 The Triggerbench Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// triggerbench exercises a single GPIO output line in a timed press/release
// sequence to measure the achievable cycle rate of a hardware trigger
// mechanism, independent of any device driver stack above it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/jordlee/triggerbench/gpioline"
	"github.com/jordlee/triggerbench/trigger"
)

// Pause between acquisition and the first cycle, giving the triggered
// device time to settle.
const settleDelay = 500 * time.Millisecond

const rule = 80

func mainImpl() error {
	chip := flag.String("chip", "gpiochip4", "GPIO chip device name")
	line := flag.Int("line", 12, "line offset of the trigger pin on the chip")
	press := flag.Duration("press", 50*time.Millisecond, "how long the trigger is held high")
	delay := flag.Duration("delay", 200*time.Millisecond, "pause between cycles (capture and save time)")
	count := flag.Int("count", 30, "number of trigger cycles to run")
	flag.Parse()

	if *count < 1 {
		return errors.New("count must be at least 1")
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", rule))
	fmt.Println("Standalone GPIO Trigger Test (No SDK)")
	fmt.Printf("%s\n\n", strings.Repeat("=", rule))

	fmt.Printf("Initializing GPIO %s line %d...\n", *chip, *line)
	pin, err := gpioline.Acquire(gpioline.SystemProvider(), *chip, *line, gpio.Low)
	if err != nil {
		if hint := remediation(err); hint != "" {
			return fmt.Errorf("%w\n%s", err, hint)
		}
		return err
	}
	defer pin.Release()
	fmt.Printf("GPIO line %d initialized successfully.\n", *line)

	start := time.Now()
	logName := logFileName(start)
	logFile, err := os.Create(logName)
	if err != nil {
		return fmt.Errorf("create log file: %w", err)
	}
	defer logFile.Close()
	out := &lineTee{console: os.Stdout, file: logFile}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", rule))
	fmt.Fprintln(out, "Standalone GPIO Trigger Test (No SDK Dependencies)")
	fmt.Fprintf(out, "GPIO Chip: %s\n", *chip)
	fmt.Fprintf(out, "GPIO Line: %d\n", *line)
	fmt.Fprintf(out, "Started: %s\n", start.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "%s\n\n", strings.Repeat("=", rule))

	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "  - Press duration: %s\n", *press)
	fmt.Fprintf(out, "  - Cycle delay: %s\n", *delay)
	fmt.Fprintf(out, "  - Total triggers: %d\n\n", *count)

	time.Sleep(settleDelay)

	ctl := trigger.New(trigger.Config{Cycles: *count, Press: *press, Delay: *delay})
	// The running counter stays on the console; the persisted log only
	// carries complete lines.
	ctl.OnProgress(func(done, total int) {
		fmt.Printf("Trigger %d/%d\r", done, total)
	})

	fmt.Fprintf(out, "Starting GPIO trigger sequence...\n\n")
	sum := ctl.Run(pin)
	fmt.Println()

	fmt.Fprintf(out, "\n=== Test Complete ===\n")
	fmt.Fprintf(out, "Total triggers: %d\n", sum.Cycles)
	fmt.Fprintf(out, "Total time: %.2f seconds\n", sum.Elapsed.Seconds())
	fmt.Fprintf(out, "Average speed: %.2f fps\n", sum.RatePerSecond())
	fmt.Fprintf(out, "Average cycle time: %.0f ms\n", sum.CycleTime().Seconds()*1000)
	if sum.WriteFailures > 0 {
		fmt.Fprintf(out, "WARNING: %d pin writes failed during the run\n", sum.WriteFailures)
	}
	fmt.Fprintf(out, "\nLog saved to: %s\n", logName)
	fmt.Fprintf(out, "%s\n\n", strings.Repeat("=", rule))

	return nil
}

func logFileName(t time.Time) string {
	return fmt.Sprintf("gpio_standalone_test_%s.log", t.Format("20060102_150405"))
}

// remediation names the likely fix for an acquisition error.
func remediation(err error) string {
	switch {
	case errors.Is(err, gpioline.ErrPlatformUnsupported):
		return "GPIO control requires Linux with the GPIO character device."
	case errors.Is(err, gpioline.ErrChipOpen):
		return "Check the chip name (ls /dev/gpiochip*) and that you have permission to open it."
	case errors.Is(err, gpioline.ErrLineNotFound):
		return "Check the line offset against the chip's line count (gpioinfo)."
	case errors.Is(err, gpioline.ErrLineRequest):
		return "The line may already be claimed by another process (gpioinfo shows the consumer)."
	}
	return ""
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "triggerbench: %s\n", err)
		os.Exit(1)
	}
}
