package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"github.com/a1ien/sbd-lib/directip"
	"github.com/a1ien/sbd-lib/sbdjson"
)

var (
	rootCmd = &cobra.Command{
		Use:   "sbd-analyze [file|hex]",
		Short: "Decode Iridium SBD DirectIP messages",
		Long:  "sbd-analyze decodes DirectIP framed SBD messages, given either a .sbd file or a hex dump of the frame.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive()
			}
			return runAnalyze(args[0])
		},
	}

	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the decoded message as JSON")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive() error {
	scanner := bufio.NewScanner(os.Stdin)
	logrus.Info("sbd-analyze interactive mode. Paste a hex frame and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := analyzeHex(line); err != nil {
			logrus.WithError(err).Error("failed to decode message")
		}
	}
	return scanner.Err()
}

func runAnalyze(arg string) error {
	if _, err := os.Stat(arg); err == nil {
		message, err := directip.ReadFile(arg)
		if err != nil {
			return err
		}
		return printMessage(message)
	}
	return analyzeHex(arg)
}

func analyzeHex(s string) error {
	raw, err := hex.DecodeString(strings.Map(dropSpace, s))
	if err != nil {
		return fmt.Errorf("cannot decode hex frame: %w", err)
	}
	message, err := directip.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	return printMessage(message)
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}

func printMessage(message *directip.Message) error {
	if jsonOutput {
		return sbdjson.Encode(os.Stdout, message)
	}
	fmt.Println(message.String())
	fmt.Printf("payload text: %s\n", payloadText(message.Payload()))
	return nil
}

// payloadText renders the payload leniently: as UTF-8 if it decodes cleanly,
// falling back to ISO 8859-1, and to plain hex if all text is hopeless.
func payloadText(payload []byte) string {
	if utf8.Valid(payload) {
		return string(payload)
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(payload)
	if err != nil {
		return hex.EncodeToString(payload)
	}
	return string(text)
}
