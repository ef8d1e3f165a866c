// Package lang compiles cfglang source text into an [Environment] of named
// constants.
//
// # Grammar
//
// Informal EBNF:
//
//	Program     → Declaration* EOF
//	Declaration → Name ':' Value
//	Value       → Number | String | Array | Dict | Expr
//	Array       → '<<' (Value | ',')* '>>'
//	Dict        → '[' (Name '[' String ']')* ']'
//	Expr        → '?[' (Number | Name | Operator | 'len')* ']'
//
// Line comments start with '%' and run to the end of the line. Block
// comments open with "(comment" and close at the next ')'; they do not nest.
//
// # Example
//
//	% server settings
//	port: 8080
//	hosts: << 'alpha', 'beta' >>
//	labels: [ env ['prod'] tier ['web'] ]
//	(comment
//	  expressions see every constant declared above them
//	)
//	count: ?[len hosts]
//	next: ?[port 1 +]
//
// # Compilation
//
// [Compile] runs two phases: [Tokenize] turns the whole source into a token
// slice, then a recursive-descent parser walks the tokens top to bottom.
// Each expression is converted to reverse Polish notation and evaluated
// immediately against a read-only [View] of the constants declared before
// it, so forward and self references are undefined names.
//
// The Environment is published only when the whole source compiles. Every
// failure is an [*Error] matching [ErrSyntax] via [errors.Is].
package lang
