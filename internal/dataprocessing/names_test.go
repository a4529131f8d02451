package dataprocessing

import (
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"fundingpulse/pkg/contracts/domain"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already clean", input: "Accel Partners", expected: "Accel Partners"},
		{name: "upper case tail lowered", input: "ABC Ventures", expected: "Abc Ventures"},
		{name: "all caps", input: "OLA CABS", expected: "Ola Cabs"},
		{name: "surrounding whitespace", input: "  Tiger Global  ", expected: "Tiger Global"},
		{name: "lower case words", input: "sequoia capital india", expected: "Sequoia Capital India"},
		{name: "punctuation stripped", input: "Accel@ Partners!!", expected: "Accel Partners"},
		{name: "whitespace runs collapsed", input: "Kalaari  Capital\t\tPartners", expected: "Kalaari Capital Partners"},
		{name: "apostrophe kept", input: "Ola's Fund", expected: "Ola's Fund"},
		{name: "ampersand and hyphen kept", input: "Blume & Co-Invest", expected: "Blume & Co-Invest"},
		{name: "no-break space", input: "XYZ\u00a0Capital", expected: "Xyz Capital"},
		{name: "latin1 mojibake repaired then stripped", input: "CafÃ© Coffee Day", expected: "Caf Coffee Day"},
		{name: "only punctuation", input: "!!!", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanName(tt.input))
		})
	}
}

func TestCleanStartupName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "Flipkart", expected: "Flipkart"},
		{name: "leading url", input: "https://www.example.com Flipkart", expected: "Flipkart"},
		{name: "leading http url only", input: "http://paytm.com", expected: ""},
		{name: "url not at start is cleaned not removed", input: "Paytm http://x", expected: "Paytm Httpx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanStartupName(tt.input))
		})
	}
}

func TestNormalizeInvestorText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "missing", input: "", expected: domain.UndisclosedInvestor},
		{name: "blank", input: "   ", expected: domain.UndisclosedInvestor},
		{name: "escaped no-break space", input: `ABC Ventures, XYZ\xc2\xa0Capital`, expected: "ABC Ventures, XYZ Capital"},
		{name: "real no-break space", input: "ABC Ventures, XYZ\xc2\xa0Capital", expected: "ABC Ventures, XYZ Capital"},
		{name: "escaped newline", input: `Accel\nPartners`, expected: "Accel Partners"},
		{name: "escaped possessive", input: `Ola\xe2\x80\x99s Fund`, expected: "Ola Fund"},
		{name: "untouched", input: "Sequoia Capital", expected: "Sequoia Capital"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeInvestorText(tt.input))
		})
	}
}

func TestSplitInvestors(t *testing.T) {
	assert.Equal(t, []string{"ABC Ventures", "XYZ Capital"},
		SplitInvestors("ABC Ventures, XYZ Capital"))
	assert.Equal(t, []string{"A", "B", "A"}, SplitInvestors("A,, B ,  ,A,"))
	assert.Empty(t, SplitInvestors(" , ,"))
}

func TestInvestorPipeline(t *testing.T) {
	text := NormalizeInvestorText("ABC Ventures, XYZ\xc2\xa0Capital")
	assert.Equal(t, []string{"ABC Ventures", "XYZ Capital"}, SplitInvestors(text))
	assert.Equal(t, []string{"Abc Ventures", "Xyz Capital"}, CleanNames(SplitInvestors(text)))
}

func TestCleanName_CaseVariantsCollapse(t *testing.T) {
	variants := []string{"OLA Cabs", "Ola Cabs", "ola cabs", "  ola   CABS "}
	for _, v := range variants {
		assert.Equal(t, "Ola Cabs", CleanName(v), v)
		assert.Equal(t, "Ola Cabs", CleanStartupName(v), v)
	}
}

func TestStartupKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "flipkart", expected: "Flipkart"},
		{input: "https://ola.in Ola", expected: "Ola"},
		{input: "http://paytm.com", expected: domain.NotAvailable},
		{input: "!!!", expected: domain.NotAvailable},
		{input: "   ", expected: domain.NotAvailable},
		{input: "", expected: domain.NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StartupKey(tt.input))
		})
	}
}

var cleanedCharset = regexp.MustCompile(`^[A-Za-z0-9&\-\s']*$`)

func TestCleanName_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("CleanName is idempotent", prop.ForAll(
		func(s string) bool {
			once := CleanName(s)
			return CleanName(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("CleanStartupName is idempotent", prop.ForAll(
		func(s string) bool {
			once := CleanStartupName(s)
			return CleanStartupName(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("CleanName output stays within the name charset", prop.ForAll(
		func(s string) bool {
			return cleanedCharset.MatchString(CleanName(s)) && cleanedCharset.MatchString(CleanStartupName(s))
		},
		gen.AnyString(),
	))

	properties.Property("idempotent on ASCII punctuated names", prop.ForAll(
		func(words []string) bool {
			s := ""
			for _, w := range words {
				s += " " + w + "!,"
			}
			once := CleanName(s)
			return CleanName(once) == once
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
