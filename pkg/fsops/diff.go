package fsops

import (
	"fmt"
	"os"
	"strings"
)

// Diff produces a unified diff between two files inside the workspace.
func (o *Ops) Diff(pathA, pathB string, contextLines int) (string, error) {
	absA, err := o.ws.Resolve(pathA)
	if err != nil {
		return "", err
	}
	absB, err := o.ws.Resolve(pathB)
	if err != nil {
		return "", err
	}
	dataA, err := os.ReadFile(absA)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pathA, err)
	}
	dataB, err := os.ReadFile(absB)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pathB, err)
	}
	if contextLines <= 0 {
		contextLines = 3
	}
	a := splitLines(string(dataA))
	b := splitLines(string(dataB))
	hunks := diffHunks(a, b, contextLines)
	if len(hunks) == 0 {
		return "", nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", pathA, pathB)
	for _, h := range hunks {
		sb.WriteString(h)
	}
	return sb.String(), nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type editOp struct {
	kind byte // ' ', '-', '+'
	text string
}

// diffOps computes a line-level edit script using an LCS table.
func diffOps(a, b []string) []editOp {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}
	var ops []editOp
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			ops = append(ops, editOp{' ', a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, editOp{'-', a[i]})
			i++
		default:
			ops = append(ops, editOp{'+', b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, editOp{'-', a[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, editOp{'+', b[j]})
	}
	return ops
}

// diffHunks groups the edit script into unified hunks with context.
func diffHunks(a, b []string, context int) []string {
	ops := diffOps(a, b)
	var hunks []string
	i := 0
	aLine, bLine := 1, 1
	for i < len(ops) {
		if ops[i].kind == ' ' {
			aLine++
			bLine++
			i++
			continue
		}
		// Found a change; pull in leading context.
		start := i
		lead := 0
		for start > 0 && lead < context && ops[start-1].kind == ' ' {
			start--
			lead++
		}
		end := i
		gap := 0
		for end < len(ops) {
			if ops[end].kind == ' ' {
				gap++
				if gap > context*2 {
					break
				}
			} else {
				gap = 0
			}
			end++
		}
		// Trim trailing context beyond the limit.
		trail := 0
		for end > start && ops[end-1].kind == ' ' {
			trail++
			end--
		}
		keep := trail
		if keep > context {
			keep = context
		}
		end += keep

		hunkAStart := aLine - lead
		hunkBStart := bLine - lead
		var body strings.Builder
		aCount, bCount := 0, 0
		for _, op := range ops[start:end] {
			body.WriteByte(op.kind)
			body.WriteString(op.text)
			body.WriteByte('\n')
			switch op.kind {
			case ' ':
				aCount++
				bCount++
			case '-':
				aCount++
			case '+':
				bCount++
			}
		}
		hunks = append(hunks, fmt.Sprintf("@@ -%d,%d +%d,%d @@\n%s", hunkAStart, aCount, hunkBStart, bCount, body.String()))
		// Advance line counters past the consumed ops.
		for _, op := range ops[i:end] {
			switch op.kind {
			case ' ':
				aLine++
				bLine++
			case '-':
				aLine++
			case '+':
				bLine++
			}
		}
		i = end
	}
	return hunks
}
