// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datasets

import (
	"io"
	"strings"

	"github.com/vizlab/go-vizlab/hierarchy"
)

// BudgetRoot is the code of the synthetic root of the COFOG
// classification of government expenditure.
const BudgetRoot = "COFOG"

// BudgetLine is one row of a COFOG expenditure table. Amount is kept
// as text; blank amounts count as zero when aggregated.
type BudgetLine struct {
	Level       string `json:"level"`
	Code        string `json:"code"`
	Amount      string `json:"amount,omitempty"`
	Description string `json:"description"`
}

// LoadBudget reads a COFOG CSV with Level, Code, Amount and
// Description columns.
func LoadBudget(r io.Reader) ([]BudgetLine, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require("Code"); err != nil {
		return nil, err
	}
	var lines []BudgetLine
	for _, row := range t.rows {
		code := strings.TrimSpace(t.get(row, "Code"))
		if code == "" {
			continue
		}
		lines = append(lines, BudgetLine{
			Level:       t.get(row, "Level"),
			Code:        code,
			Amount:      t.get(row, "Amount"),
			Description: t.get(row, "Description"),
		})
	}
	return lines, nil
}

// BudgetParent returns the parent code of code. Divisions such as
// "GF01" hang off the root and every deeper code drops its last two
// characters: "GF0101" belongs to "GF01". The root has no parent.
func BudgetParent(code string) (string, bool) {
	switch {
	case code == BudgetRoot:
		return "", false
	case len(code) <= 4:
		return BudgetRoot, true
	}
	return code[:len(code)-2], true
}

// WithBudgetRoot returns lines followed by the synthetic root row.
func WithBudgetRoot(lines []BudgetLine) []BudgetLine {
	out := append([]BudgetLine(nil), lines...)
	return append(out, BudgetLine{Level: "0", Code: BudgetRoot, Description: "Root node"})
}

// BudgetTree stratifies lines under a synthetic root and sums
// amounts up the tree.
func BudgetTree(lines []BudgetLine) (*hierarchy.Node, error) {
	root, err := hierarchy.Stratify(WithBudgetRoot(lines),
		func(l BudgetLine) string { return l.Code },
		func(l BudgetLine) (string, bool) { return BudgetParent(l.Code) })
	if err != nil {
		return nil, err
	}
	return hierarchy.Aggregate(root, func(n *hierarchy.Node) float64 {
		return hierarchy.ParseAmount(n.Data.(BudgetLine).Amount)
	}, nil), nil
}

// BudgetLabel returns the description of a budget tree node.
func BudgetLabel(n *hierarchy.Node) string {
	if l, ok := n.Data.(BudgetLine); ok && l.Description != "" {
		return l.Description
	}
	return n.ID
}
