package instancefmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gitrdm/printemps/pkg/model"
)

// ParseInstance reads a PB-lite file from r.
//
// Grammar, one statement per non-blank line. A line starting with '*' is a
// comment. An objective line starts with "min:" or "max:" followed by
// terms, e.g. "min: +1 x1 -2 x2 ;". A constraint line carries an optional
// "name:" label, then terms, then one of >= <= =, then a right-hand side,
// e.g. "c1: +1 x1 +1 x2 +1 x3 >= 1 ;". A bounds line overrides a variable's
// default [0,1] bound with name/lower/upper triples, e.g.
// "bounds: x1 0 5 x2 0 1 ;". Terms are coefficient/variable-name pairs
// ("+3 x1", "-1 x2"); the sign must be attached to the coefficient field.
func ParseInstance(r io.Reader) (*Instance, error) {
	inst := &Instance{}
	sawObjective := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}
		line = strings.TrimSuffix(strings.TrimSpace(line), ";")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch {
		case fields[0] == "min:" || fields[0] == "max:":
			if sawObjective {
				return nil, fmt.Errorf("instancefmt: line %d: duplicate objective row", lineNo)
			}
			sawObjective = true
			sense := Minimize
			if fields[0] == "max:" {
				sense = Maximize
			}
			terms, err := parseTerms(fields[1:], lineNo)
			if err != nil {
				return nil, err
			}
			inst.Objective = Objective{Sense: sense, Terms: terms}

		case fields[0] == "bounds:":
			bounds, err := parseBounds(fields[1:], lineNo)
			if err != nil {
				return nil, err
			}
			inst.Bounds = append(inst.Bounds, bounds...)

		default:
			def, err := parseConstraint(fields, lineNo)
			if err != nil {
				return nil, err
			}
			inst.Constraints = append(inst.Constraints, def)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("instancefmt: %w", err)
	}
	if !sawObjective {
		return nil, fmt.Errorf("instancefmt: missing objective row")
	}
	return inst, nil
}

// senseTokens maps a row's relational operator to the model.ConstraintSense
// of "sum(terms) - rhs <sense-relative-to-zero>".
var senseTokens = map[string]model.ConstraintSense{
	">=": model.Greater,
	"<=": model.Less,
	"=":  model.Equal,
}

func parseConstraint(fields []string, lineNo int) (ConstraintDef, error) {
	name := ""
	if len(fields) > 0 && strings.HasSuffix(fields[0], ":") {
		name = strings.TrimSuffix(fields[0], ":")
		fields = fields[1:]
	}

	opIndex := -1
	for i, f := range fields {
		if _, ok := senseTokens[f]; ok {
			opIndex = i
			break
		}
	}
	if opIndex < 0 {
		return ConstraintDef{}, fmt.Errorf("instancefmt: line %d: missing relational operator", lineNo)
	}
	if opIndex+2 != len(fields) {
		return ConstraintDef{}, fmt.Errorf("instancefmt: line %d: expected exactly one value after relational operator", lineNo)
	}

	terms, err := parseTerms(fields[:opIndex], lineNo)
	if err != nil {
		return ConstraintDef{}, err
	}
	rhs, err := strconv.ParseInt(fields[opIndex+1], 10, 64)
	if err != nil {
		return ConstraintDef{}, fmt.Errorf("instancefmt: line %d: invalid right-hand side %q: %w", lineNo, fields[opIndex+1], err)
	}

	return ConstraintDef{
		Name:  name,
		Terms: terms,
		Sense: senseTokens[fields[opIndex]],
		RHS:   rhs,
	}, nil
}

func parseTerms(fields []string, lineNo int) ([]Term, error) {
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("instancefmt: line %d: terms must be coefficient/variable pairs", lineNo)
	}
	terms := make([]Term, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		coef, err := strconv.ParseInt(fields[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("instancefmt: line %d: invalid coefficient %q: %w", lineNo, fields[i], err)
		}
		terms = append(terms, Term{Coefficient: coef, Variable: fields[i+1]})
	}
	return terms, nil
}

func parseBounds(fields []string, lineNo int) ([]BoundDef, error) {
	if len(fields)%3 != 0 {
		return nil, fmt.Errorf("instancefmt: line %d: bounds must be name/lower/upper triples", lineNo)
	}
	bounds := make([]BoundDef, 0, len(fields)/3)
	for i := 0; i < len(fields); i += 3 {
		lower, err := strconv.ParseInt(fields[i+1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("instancefmt: line %d: invalid lower bound %q: %w", lineNo, fields[i+1], err)
		}
		upper, err := strconv.ParseInt(fields[i+2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("instancefmt: line %d: invalid upper bound %q: %w", lineNo, fields[i+2], err)
		}
		bounds = append(bounds, BoundDef{Variable: fields[i], Lower: lower, Upper: upper})
	}
	return bounds, nil
}
