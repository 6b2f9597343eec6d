// Package fuzztests houses Go fuzz harnesses that run arbitrary input through
// the lexer, the macro-call parser and builtin expansion. They guard against
// panics, broken span invariants and hangs.
//
// Назначение: загрузить байты в FileSet и прогнать их через lexer, syntax и
// driver.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/syntax,
// internal/driver, internal/testkit.

package fuzztests
