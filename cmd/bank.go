package cmd

import (
	"fmt"
	"os"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/config"
	"github.com/spf13/cobra"
)

// sampleBank is served when no bank file is configured, so the app is usable
// straight after install.
const sampleBank = `What is the value of $\pi$ (rounded to 2 decimal places)?
A. 3.14
B. 3.12
C. 3.16
D. 3.18
ANSWER: A
DIFFICULTY: medium
TIME: 60
TOPIC: Mathematics

Calculate the derivative of $f(x) = x^2 + 2x + 1$
A. $f'(x) = 2x + 1$
B. $f'(x) = x^2 + 2$
C. $f'(x) = 2x + 2$
D. $f'(x) = 2x^2 + 2$
ANSWER: C
DIFFICULTY: hard
TIME: 90
TOPIC: Calculus

![Diagram of a cell](https://images.unsplash.com/photo-1594904351111-a072f80b1a71)
Which part of the cell is responsible for protein synthesis?
A. Nucleus
B. Mitochondria
C. Ribosome
D. Golgi Apparatus
ANSWER: C
DIFFICULTY: medium
TIME: 45
TOPIC: Biology`

// loadBank resolves the bank source (--bank flag, then configuration, then
// the embedded sample) and parses it.
func loadBank(cmd *cobra.Command, cfg config.Config) ([]aiken.Question, aiken.Report, error) {
	path := cfg.BankPath
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		path = p
	}
	if path == "" {
		qs, report := aiken.Parse(sampleBank)
		return qs, report, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, aiken.Report{}, fmt.Errorf("read question bank: %w", err)
	}
	qs, report := aiken.Parse(string(raw))
	if len(qs) == 0 {
		return nil, report, fmt.Errorf("no usable questions in %s (%d malformed blocks)", path, report.Dropped)
	}
	return qs, report, nil
}
