package lex

// Kind identifies the lexical class of a Lexeme.
type Kind int

const (
	EOF Kind = iota
	ConstInteger
	ConstFloat
	ConstString
	Identifier

	// keywords
	KwClass
	KwClassDef
	KwPrint
	KwWhile
	KwIf
	KwElse
	KwFor
	KwBreak
	KwContinue
	KwReturn
	KwFn
	KwNew
	KwI32
	KwF32
	KwString
	KwArrayInit

	// operators, longest-match-first
	OpArrow   // ->
	OpInc     // ++
	OpDec     // --
	OpGe      // >=
	OpLe      // <=
	OpEq      // ==
	OpNe      // !=
	OpAnd     // &&
	OpOr      // ||
	OpAddAssn // +=
	OpSubAssn // -=
	OpMulAssn // *=
	OpDivAssn // /=

	// punctuation
	Plus
	Minus
	Star
	Slash
	Lt
	Gt
	Assign
	Bang
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Semi
	Colon
)

var keywords = map[string]Kind{
	"class":      KwClass,
	"class_def":  KwClassDef,
	"print":      KwPrint,
	"while":      KwWhile,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"break":      KwBreak,
	"continue":   KwContinue,
	"return":     KwReturn,
	"fn":         KwFn,
	"new":        KwNew,
	"i32":        KwI32,
	"f32":        KwF32,
	"string":     KwString,
	"array_init": KwArrayInit,
}

// operators, longest spelling first so the lexer can match greedily.
var operators = []struct {
	text string
	kind Kind
}{
	{"->", OpArrow},
	{"++", OpInc},
	{"--", OpDec},
	{">=", OpGe},
	{"<=", OpLe},
	{"==", OpEq},
	{"!=", OpNe},
	{"&&", OpAnd},
	{"||", OpOr},
	{"+=", OpAddAssn},
	{"-=", OpSubAssn},
	{"*=", OpMulAssn},
	{"/=", OpDivAssn},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"<", Lt},
	{">", Gt},
	{"=", Assign},
	{"!", Bang},
	{"(", LParen},
	{")", RParen},
	{"{", LBrace},
	{"}", RBrace},
	{"[", LBracket},
	{"]", RBracket},
	{",", Comma},
	{".", Dot},
	{";", Semi},
	{":", Colon},
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}

var kindNames = map[Kind]string{
	EOF:          "EOF",
	ConstInteger: "integer constant",
	ConstFloat:   "float constant",
	ConstString:  "string literal",
	Identifier:   "identifier",
	KwClass:      "class",
	KwClassDef:   "class_def",
	KwPrint:      "print",
	KwWhile:      "while",
	KwIf:         "if",
	KwElse:       "else",
	KwFor:        "for",
	KwBreak:      "break",
	KwContinue:   "continue",
	KwReturn:     "return",
	KwFn:         "fn",
	KwNew:        "new",
	KwI32:        "i32",
	KwF32:        "f32",
	KwString:     "string",
	KwArrayInit:  "array_init",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Lt:           "<",
	Gt:           ">",
	Assign:       "=",
	Bang:         "!",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	LBracket:     "[",
	RBracket:     "]",
	Comma:        ",",
	Dot:          ".",
	Semi:         ";",
	Colon:        ":",
	OpArrow:      "->",
	OpInc:        "++",
	OpDec:        "--",
	OpGe:         ">=",
	OpLe:         "<=",
	OpEq:         "==",
	OpNe:         "!=",
	OpAnd:        "&&",
	OpOr:         "||",
	OpAddAssn:    "+=",
	OpSubAssn:    "-=",
	OpMulAssn:    "*=",
	OpDivAssn:    "/=",
}
