package highlight

import "github.com/alecthomas/chroma/v2"

// Kind classifies how a character is coloured.
type Kind uint8

const (
	None Kind = iota
	Number
	Match
	String
	Character
	Comment
	PrimaryKeyword
	SecondaryKeyword
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Number:
		return "number"
	case Match:
		return "match"
	case String:
		return "string"
	case Character:
		return "character"
	case Comment:
		return "comment"
	case PrimaryKeyword:
		return "keyword"
	case SecondaryKeyword:
		return "type"
	default:
		return "unknown"
	}
}

// TokenType maps a Kind onto the chroma token whose style colours it.
func (k Kind) TokenType() chroma.TokenType {
	switch k {
	case Number:
		return chroma.LiteralNumber
	case String:
		return chroma.LiteralStringDouble
	case Character:
		return chroma.LiteralStringChar
	case Comment:
		return chroma.CommentSingle
	case PrimaryKeyword:
		return chroma.Keyword
	case SecondaryKeyword:
		return chroma.KeywordType
	default:
		return chroma.Text
	}
}
