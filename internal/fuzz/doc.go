// Package fuzztests houses Go fuzz harnesses that exercise the C# front end
// (source -> lexer -> parser -> resolve -> sema). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через весь конвейер проверки.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
