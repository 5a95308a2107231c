package ofx

import (
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
)

func TestPreprocessOFX(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "leading whitespace trimmed",
			input: "\r\n  OFXHEADER:100",
			want:  "OFXHEADER:100",
		},
		{
			name:  "severity uppercased",
			input: "<SEVERITY>Info</SEVERITY>",
			want:  "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:  "unclosed sgml tag fixed",
			input: "<STMTTRN\n<TRNTYPE>DEBIT",
			want:  "<STMTTRN>\n<TRNTYPE>DEBIT",
		},
		{
			name:  "wellformed content untouched",
			input: "<STMTTRN>\n<TRNTYPE>DEBIT</TRNTYPE>",
			want:  "<STMTTRN>\n<TRNTYPE>DEBIT</TRNTYPE>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.preprocessOFX(tt.input))
		})
	}
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name string
		tx   ofxgo.Transaction
		want string
	}{
		{
			name: "payee name wins",
			tx: ofxgo.Transaction{
				Name:  ofxgo.String("GENERIC"),
				Payee: &ofxgo.Payee{Name: ofxgo.String("UNITED AIRLINES")},
			},
			want: "UNITED AIRLINES",
		},
		{
			name: "memo replaces generic name",
			tx: ofxgo.Transaction{
				Name: ofxgo.String("DEBIT"),
				Memo: ofxgo.String("MARRIOTT CHICAGO IL"),
			},
			want: "MARRIOTT CHICAGO IL",
		},
		{
			name: "specific name keeps over memo",
			tx: ofxgo.Transaction{
				Name: ofxgo.String("STARBUCKS #2201"),
				Memo: ofxgo.String("POS 1234"),
			},
			want: "STARBUCKS #2201",
		},
		{
			name: "processor prefix stripped",
			tx: ofxgo.Transaction{
				Name: ofxgo.String("POS PURCHASE UBER TRIP"),
			},
			want: "UBER TRIP",
		},
		{
			name: "leading date stamp stripped",
			tx: ofxgo.Transaction{
				Name: ofxgo.String("01/15 HILTON AUSTIN TX"),
			},
			want: "HILTON AUSTIN TX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDescription(tt.tx))
		})
	}
}

func TestIsGenericDescription(t *testing.T) {
	assert.True(t, isGenericDescription("DEBIT"))
	assert.True(t, isGenericDescription("payment"))
	assert.False(t, isGenericDescription("UNITED AIRLINES"))
	assert.False(t, isGenericDescription("DEBIT CARD 1234"))
}
