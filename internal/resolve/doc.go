// Package resolve turns parsed C# declarations into the descriptors the
// checker works on.
//
// An Env is built once per run from well-known System types, the types
// listed in theorycheck.toml and every type declared in the parsed files.
// It is read-only afterwards and safe for concurrent use. Env.Sites walks one
// file and produces a sema.Site per literal-data attribute on a Theory
// method: parameter types are resolved in the scope of the declaring type,
// argument expressions are classified into types.Value, and the attribute's
// own object[] argument is unwrapped the way the C# compiler passes it.
package resolve
