/*
Package langdef converts textual pattern description to grammar.Grammar structure.

A description is a list of rules separated with semicolons, each rule is a list of terms separated with commas.
Self-definition of the pattern language is:
*/
//  $space = /\s+/; $comment = /#[^\n]*/;
//  $string = /"(?:[^"\\\n]|\\.)*"|`[^`]*`/;
//  $int = /[0-9]+/;
//  $name = /[A-Za-z_][A-Za-z0-9_]*/;
//  $op = /\^\.\.|\.\.|[;,:@\[\](){}?*+]/;
//  $error = /["`].{0,10}/;
//
//  !aside $space $comment; !error $error;
//
//  grammar = rule, {';', rule}, [';'];
//  rule = ['@', $name], term, {',', term};
//  term = literal | capture | repeat | tail | anchor;
//  literal = $string;
//  capture = 'let', $name, [':', scanner];
//  scanner = $name, ['(', [arg, {',', arg}], ')'];
//  arg = $int | $string | scanner;
//  repeat = '[', term, {',', term}, ']', [separator], quantifier, [':', container];
//  separator = ',' | '(', term, {',', term}, ')';
//  quantifier = '?' | '*' | '+' | '{', [$int], [',', [$int]], '}';
//  container = $name, ['(', $string, ')'];
//  tail = '..', $name;
//  anchor = '^..', $name;
/*
Literals match input text using the policy given to the compiled rule set.
Double quoted strings may contain escape sequences: \a \b \f \n \r \t \v \\ \" \xXX \uXXXX \UXXXXXXXX.
Backquoted strings contain no escapes.

A capture with no scanner uses "string" scanner, see scanner.DefaultRegistry for scanner names.
Capture name "_" discards captured value.

A repetition separator placed between closing bracket and quantifier is matched between iterations,
a single comma means comma literal.
Container names are list (the default), set, map, sorted, join (with optional separator string,
space by default), and count.

Tail captures the rest of input, anchor captures input cursor.
Both must be the last terms of a rule and disable end of input check.

Example:

	@assign let name: ident, "=", [let value: int],*;
	@call let name: ident, "(", [let args], (",") *, ")"
*/
package langdef
