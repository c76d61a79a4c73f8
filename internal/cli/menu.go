package cli

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/avivsinai/threadlabel/internal/classify"
	"github.com/avivsinai/threadlabel/internal/format"
)

func runMenu(args []string) error {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)
	common := addCommonFlags(fs)
	usage := usageWithFlags(fs, "threadlabel menu [options]")
	if handled, err := parseFlags(fs, args, usage); err != nil {
		return err
	} else if handled {
		return nil
	}
	e, err := setup(common)
	if err != nil {
		return err
	}
	return menu(bufio.NewReader(os.Stdin), e.classifier(false))
}

// menu loops until the user exits or input ends. Errors classifying a
// thread are printed and the loop continues; only STDOUT failures end it.
func menu(in *bufio.Reader, c *classify.Classifier) error {
	if err := writeStdoutLine("=== threadlabel: email thread classifier ==="); err != nil {
		return err
	}
	for {
		if err := writeStdout("\nOptions:\n1. Classify from file\n2. Paste JSON to classify\n3. Exit\n"); err != nil {
			return err
		}
		choice, err := prompt(in, "Select option [1-3]: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return writeStdoutLine("")
			}
			return err
		}

		switch choice {
		case "1":
			path, err := prompt(in, "Enter path to JSON or .eml file: ")
			if err != nil {
				if errors.Is(err, io.EOF) {
					return writeStdoutLine("")
				}
				return err
			}
			if info, statErr := os.Stat(path); statErr != nil || info.IsDir() {
				if err := writeStdoutLine("File not found."); err != nil {
					return err
				}
				continue
			}
			res, err := classifyInput(c, path)
			if err := showResult(in, res, err); err != nil {
				return err
			}
		case "2":
			if err := writeStdoutLine("Paste your thread JSON below (end with an empty line):"); err != nil {
				return err
			}
			doc, err := readPasted(in)
			if err != nil {
				return err
			}
			res, err := classifyPasted(c, doc)
			if err := showResult(in, res, err); err != nil {
				return err
			}
		case "3":
			return writeStdoutLine("Exiting.")
		default:
			if err := writeStdoutLine("Invalid option."); err != nil {
				return err
			}
		}
	}
}

// readPasted collects lines up to the first blank line or end of input.
func readPasted(in *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, strings.TrimRight(line, "\r\n"))
		if err != nil {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

func classifyPasted(c *classify.Classifier, doc string) (classify.Result, error) {
	raw, err := format.ParseRequest([]byte(doc))
	if err != nil {
		return classify.Result{}, err
	}
	return c.Classify(raw)
}

func showResult(in *bufio.Reader, res classify.Result, classifyErr error) error {
	if classifyErr != nil {
		return writeStdout("Error: %v\n", classifyErr)
	}
	if err := writeStdoutLine("\nClassification result:"); err != nil {
		return err
	}
	if err := format.WriteResult(os.Stdout, res); err != nil {
		return err
	}
	save, err := confirmPrompt(in, "Save result to file?")
	if err != nil || !save {
		return err
	}
	path, err := prompt(in, "Enter output file path: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if path == "" {
		return writeStdoutLine("No path given, not saved.")
	}
	if err := writeResultFile(path, res); err != nil {
		return writeStdout("Error: %v\n", err)
	}
	return writeStdout("Result saved to %s\n", path)
}
