package builder

import (
	"fmt"

	"microc/pkg/color"
	"microc/pkg/lexer"
)

func (b *Builder) addError(e string) {
	b.errors = append(b.errors, e)
}

func at(pos lexer.Position) string {
	return " at " + color.YellowText(fmt.Sprintf("Line: %d, Column %d", pos.Line, pos.Column))
}

func (b *Builder) addUndefinedFunctionError(funcName string, pos lexer.Position) {
	b.addError(color.RedText("Undefined function") + " `" + color.BlueText(funcName) + "`" + at(pos))
}

func (b *Builder) addRedefinitionError(funcName string, pos lexer.Position) {
	b.addError(color.RedText("Redefinition of function") + " `" + color.BlueText(funcName) + "`" + at(pos))
}

func (b *Builder) addDuplicateParameterError(name string, pos lexer.Position) {
	b.addError(color.RedText("Duplicate parameter") + " `" + color.BlueText(name) + "`" + at(pos))
}

func (b *Builder) addArityError(funcName string, want, got int, pos lexer.Position) {
	msg := color.RedText("Argument count mismatch") + " calling `" + color.BlueText(funcName) + "`"
	msg += fmt.Sprintf(": expected %s, found %s", color.BlueText(fmt.Sprint(want)), color.BlueText(fmt.Sprint(got)))
	b.addError(msg + at(pos))
}

func (b *Builder) addVoidFunctionError(funcName string, pos lexer.Position) {
	b.addError(color.RedText("Only main may return void, found") + " `" + color.BlueText(funcName) + "`" + at(pos))
}

func (b *Builder) addUnsupportedHeaderError(header string, pos lexer.Position) {
	b.addError(color.RedText("Unsupported header") + " `" + color.BlueText(header) + "`" + at(pos))
}

func (b *Builder) addMissingIncludeError(pos lexer.Position) {
	b.addError(color.RedText("print requires") + " `" + color.BlueText("#include <"+MicroIO+">") + "`" + at(pos))
}

func (b *Builder) addLiteralRangeError(lexeme string, pos lexer.Position) {
	b.addError(color.RedText("Integer literal out of range") + " `" + color.BlueText(lexeme) + "`" + at(pos))
}

func (b *Builder) addMissingEntryError() {
	b.addError(color.RedText("'void main()' function not found"))
}

func (b *Builder) GetErrors() []string {
	return b.errors
}
