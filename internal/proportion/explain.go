package proportion

import (
	"strings"

	"golang.org/x/text/message"

	"ruleofthree/internal/i18n"
)

// Explanation is the step-by-step walkthrough of one calculation.
type Explanation struct {
	Formula      string `json:"formula"`
	Substitution string `json:"substitution"`
	Calculation  string `json:"calculation"`
	Note         string `json:"note"`
}

// Lines returns the walkthrough in display order.
func (e Explanation) Lines() []string {
	return []string{e.Formula, e.Substitution, e.Calculation, e.Note}
}

func (e Explanation) String() string {
	return strings.Join(e.Lines(), "\n") + "\n"
}

// Explain builds the walkthrough for X computed from a, b and c.
func Explain(p *message.Printer, m Mode, a, b, c, x float64) Explanation {
	var (
		first, second, divisor float64
		note                   string
	)

	switch m {
	case Inverse:
		first, second, divisor = a, b, c
		note = i18n.MsgInverseNote
	default:
		first, second, divisor = c, b, a
		note = i18n.MsgDirectNote
	}

	return Explanation{
		Formula: p.Sprintf(i18n.MsgFormulaLine, Formula(m)),
		Substitution: p.Sprintf(i18n.MsgSubstitutionLine,
			FormatNumber(first), FormatNumber(second), FormatNumber(divisor)),
		Calculation: p.Sprintf(i18n.MsgCalculationLine,
			FormatNumber(first*second), FormatNumber(divisor), FormatFixed2(x)),
		Note: p.Sprintf(note),
	}
}

// Example is a worked problem that pre-fills the input fields.
type Example struct {
	Mode        Mode
	A, B, C     float64
	Title       string
	Question    string
	Instruction string
}

// ExampleFor returns the worked problem for m.
func ExampleFor(p *message.Printer, m Mode) Example {
	ex := Example{
		Mode:        m,
		Title:       p.Sprintf(i18n.MsgExampleTitle, m.Label(p)),
		Instruction: p.Sprintf(i18n.MsgExampleInstruction),
	}

	if m == Inverse {
		ex.A, ex.B, ex.C = 4, 6, 2
		ex.Question = p.Sprintf(i18n.MsgInverseExampleQuestion)
		return ex
	}

	ex.A, ex.B, ex.C = 2, 10, 5
	ex.Question = p.Sprintf(i18n.MsgDirectExampleQuestion)
	return ex
}
