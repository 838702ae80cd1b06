// Package i18n holds the message catalog for every user-visible string the
// calculator produces. Message keys are the English texts; Brazilian
// Portuguese is the default locale.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	MsgLabelDirect  = "Direct"
	MsgLabelInverse = "Inverse"

	MsgDescribeDirect  = "In the direct rule of three, the quantities vary in the same direction."
	MsgDescribeInverse = "In the inverse rule of three, the quantities vary in opposite directions."
	MsgModeHeading     = "%s mode: %s"

	MsgFormulaLine      = "Formula: %s"
	MsgSubstitutionLine = "Substituting: X = (%s × %s) ÷ %s"
	MsgCalculationLine  = "Calculation: X = %s ÷ %s = %s"
	MsgDirectNote       = "📈 Since A and B are directly proportional, if A increases, B increases in the same proportion."
	MsgInverseNote      = "📉 Since A and B are inversely proportional, if A increases, B decreases in the same proportion."

	MsgValidation     = "⚠️ Fill in all values with non-zero numbers!"
	MsgValidationHint = "Valid example: A=2, B=10, C=5"
	MsgPlaceholder    = "Fill in the values above to see the solution..."

	MsgExampleTitle           = "Practical example (%s):"
	MsgDirectExampleQuestion  = "If 2 workers build 10m of wall per day, how many meters do 5 workers build?"
	MsgInverseExampleQuestion = "If 4 machines do a job in 6 hours, how long do 2 machines take to do the same job?"
	MsgExampleInstruction     = `Click "Calculate X" to see the solution!`

	MsgEmptyHistory       = "No calculations in history"
	MsgClearHistoryPrompt = "Are you sure you want to clear the whole history?"
)

var portuguese = map[string]string{
	MsgLabelDirect:  "Direta",
	MsgLabelInverse: "Inversa",

	MsgDescribeDirect:  "Na regra de três direta, as grandezas variam na mesma direção.",
	MsgDescribeInverse: "Na regra de três inversa, as grandezas variam em direções opostas.",
	MsgModeHeading:     "Modo %s: %s",

	MsgFormulaLine:      "Fórmula: %s",
	MsgSubstitutionLine: "Substituindo: X = (%s × %s) ÷ %s",
	MsgCalculationLine:  "Cálculo: X = %s ÷ %s = %s",
	MsgDirectNote:       "📈 Como A e B são diretamente proporcionais, se A aumenta, B aumenta na mesma proporção.",
	MsgInverseNote:      "📉 Como A e B são inversamente proporcionais, se A aumenta, B diminui na mesma proporção.",

	MsgValidation:     "⚠️ Preencha todos os valores com números diferentes de zero!",
	MsgValidationHint: "Exemplo válido: A=2, B=10, C=5",
	MsgPlaceholder:    "Preencha os valores acima para ver a resolução...",

	MsgExampleTitle:           "Exemplo Prático (%s):",
	MsgDirectExampleQuestion:  "Se 2 operários constroem 10m de muro por dia, quantos metros 5 operários constroem?",
	MsgInverseExampleQuestion: "Se 4 máquinas fazem um trabalho em 6 horas, em quanto tempo 2 máquinas fazem o mesmo trabalho?",
	MsgExampleInstruction:     `Clique em "Calcular X" para ver a solução!`,

	MsgEmptyHistory:       "Nenhum cálculo no histórico",
	MsgClearHistoryPrompt: "Tem certeza que quer limpar todo o histórico?",
}

// Default is the locale used when none is configured.
var Default = language.BrazilianPortuguese

var supported = []language.Tag{language.BrazilianPortuguese, language.English}

var matcher = language.NewMatcher(supported)

func init() {
	for key, text := range portuguese {
		if err := message.SetString(language.BrazilianPortuguese, key, text); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
		if err := message.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
	}
}

// ParseLocale resolves a BCP 47 tag such as "pt-BR" or "en_US" to one of
// the supported locales. An empty string selects Default.
func ParseLocale(s string) (language.Tag, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return Default, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("parse locale %q: %w", s, err)
	}

	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, fmt.Errorf("unsupported locale %q", s)
	}

	return supported[idx], nil
}

// NewPrinter returns a printer bound to the catalog for tag.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
