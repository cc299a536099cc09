// contains some misc helper functions etc. for abundhist
package misc

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrorCheck is a function to throw error to the log and exit the program
func ErrorCheck(msg error) {
	if msg != nil {
		// errors are always reported, even when the log has been silenced
		if log.Writer() == io.Discard {
			log.SetOutput(os.Stderr)
		}
		log.Fatalf("terminated\n\nERROR --> %v\n\n", msg)
	}
}

// CheckRequiredFlags is a function to check for required flags before running abundhist
func CheckRequiredFlags(flags *pflag.FlagSet) error {
	requiredError := false
	flagName := ""

	flags.VisitAll(func(flag *pflag.Flag) {
		requiredAnnotation := flag.Annotations[cobra.BashCompOneRequiredFlag]
		if len(requiredAnnotation) == 0 {
			return
		}
		flagRequired := requiredAnnotation[0] == "true"
		if flagRequired && !flag.Changed {
			requiredError = true
			flagName = flag.Name
		}
	})

	if requiredError {
		return errors.New("Required flag `" + flagName + "` has not been set")
	}

	return nil
}

// StartLogging is a function to start the log...
func StartLogging(logFile string) *os.File {
	if dir := filepath.Dir(logFile); dir != "." {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0700); err != nil {
				log.Fatal("can't create specified directory for log")
			}
		}
	}
	logFH, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		log.Fatal(err)
	}
	return logFH
}

// SetupLogging is a function to direct the log to a file, STDERR or nowhere (quiet)
//
// The returned function closes any log file that was opened.
func SetupLogging(logFile string, quiet bool) func() {
	log.SetFlags(log.LstdFlags)
	switch {
	case quiet:
		log.SetOutput(io.Discard)
	case logFile != "":
		logFH := StartLogging(logFile)
		log.SetOutput(logFH)
		return func() { logFH.Close() }
	default:
		log.SetOutput(os.Stderr)
	}
	return func() {}
}

// CheckSTDIN is a function to check that STDIN can be read
func CheckSTDIN() error {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return fmt.Errorf("error with STDIN")
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return fmt.Errorf("no STDIN found")
	}
	return nil
}

// CheckFile is a function to check that a file can be read ("-" checks STDIN)
func CheckFile(file string) error {
	if file == "-" {
		return CheckSTDIN()
	}
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %v", file)
		}
		return fmt.Errorf("can't access file (check permissions): %v", file)
	}
	return nil
}

// CheckExt is a function to check the extensions of a file
func CheckExt(file string, exts []string) error {
	splitFilename := strings.Split(file, ".")
	finalIdx := len(splitFilename) - 1
	if splitFilename[finalIdx] == "gz" {
		finalIdx--
	}
	err := fmt.Errorf("file does not have recognised extension: %v", file)
	if finalIdx < 1 {
		return err
	}
	for _, ext := range exts {
		if strings.ToLower(splitFilename[finalIdx]) == ext {
			err = nil
			break
		}
	}
	return err
}

// CheckOutDir is a function to make sure the directory for an output file exists, creating it if needed
func CheckOutDir(file string) error {
	if file == "-" {
		return nil
	}
	dir := filepath.Dir(file)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("can't create output directory: %v", dir)
		}
	}
	return nil
}

// WriteOutput is a function to open an output file ("-" is STDOUT, a .gz extension compresses) and pass it to a writer func
func WriteOutput(file string, writeFunc func(io.Writer) error) error {
	outFH, err := xopen.Wopen(file)
	if err != nil {
		return err
	}
	if err := writeFunc(outFH); err != nil {
		outFH.Close()
		return err
	}
	return outFH.Close()
}

// PrintMemUsage outputs the current, total and OS memory being used. As well as the number
// of garage collection cycles completed.
// lifted from: https://golangcode.com/print-the-current-memory-usage/
func PrintMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	return fmt.Sprintf("[ Heap Allocations: %vMb, OS Memory: %vMb, Num. GC cycles: %v ]", bToMb(m.HeapAlloc), bToMb(m.Sys), m.NumGC)
}

// bToMb converts bytes to megabytes
func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
