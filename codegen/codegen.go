package codegen

import (
	"fmt"
	"strings"
)

// Generate produces the stress source for one (pattern, size) pair. The
// output contains exactly n work units plus a single entry point that uses
// every unit once, in ascending index order, accumulating the results so the
// calls survive dead-code elimination.
//
// Empty ignores n and returns the empty source unit. Every other pattern
// requires n >= 1; compile time is sensitive to the emitted shape, so a
// degenerate size is an error rather than a degenerate file.
func Generate(p Pattern, n int) (string, error) {
	if p == Empty {
		return "", nil
	}

	if n <= 0 {
		return "", fmt.Errorf("scenario %s requires a positive size, got %d", p, n)
	}

	var b strings.Builder

	switch p {
	case Funcs:
		genFuncs(&b, n)
	case CppMember:
		genCppMember(&b, n)
	case FreeFunc:
		genFreeFunc(&b, n)
	case CppOverload:
		genCppOverload(&b, n)
	case NoOverload:
		genNoOverload(&b, n)
	case ReturnByValue:
		genReturnByValue(&b, n)
	case ReturnByPointer:
		genReturnByPointer(&b, n)
	default:
		return "", fmt.Errorf("unknown pattern %v", p)
	}

	return b.String(), nil
}

// genFuncs emits a chain of free functions: f0 returns its argument, every
// later fi calls f(i-1) with 0 and returns the result.
func genFuncs(b *strings.Builder, n int) {
	fmt.Fprintf(b, "int f0(int x) { return x; }\n")
	for i := 1; i < n; i++ {
		fmt.Fprintf(b, "int f%d(int x) { return f%d(0); }\n", i, i-1)
	}

	genEntry(b, n, func(i int) string {
		return fmt.Sprintf("    r += f%d(0);\n", i)
	})
}

// genCppMember emits one struct with a single member function and n free
// functions that each instantiate the struct locally and call the method.
func genCppMember(b *strings.Builder, n int) {
	b.WriteString("struct Obj {\n    int work(int x) { return x; }\n};\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "int f%d(int x) { Obj o; return o.work(x); }\n", i)
	}

	genEntry(b, n, func(i int) string {
		return fmt.Sprintf("    r += f%d(%d);\n", i, i)
	})
}

// genFreeFunc is the C counterpart of genCppMember: the shared work routine
// is a free function taking a pointer to the struct.
func genFreeFunc(b *strings.Builder, n int) {
	b.WriteString("struct Obj { int v; };\n")
	b.WriteString("int work(struct Obj *o) { return o->v; }\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(b,
			"int f%d(int x) { struct Obj o; o.v = x; return work(&o); }\n", i)
	}

	genEntry(b, n, func(i int) string {
		return fmt.Sprintf("    r += f%d(%d);\n", i, i)
	})
}

// genCppOverload emits n distinct struct types and a single overloaded
// function name f, redefined once per type.
func genCppOverload(b *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "struct S%d { int v; };\n", i)
		fmt.Fprintf(b, "int f(S%d *s) { return s->v; }\n", i)
	}

	genEntry(b, n, func(i int) string {
		return fmt.Sprintf("    { S%d s; s.v = %d; r += f(&s); }\n", i, i)
	})
}

// genNoOverload is the control for genCppOverload: same n struct types, but
// each gets its own uniquely named function, so no overload resolution.
func genNoOverload(b *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "struct S%d { int v; };\n", i)
		fmt.Fprintf(b, "int f%d(struct S%d *s) { return s->v; }\n", i, i)
	}

	genEntry(b, n, func(i int) string {
		return fmt.Sprintf(
			"    { struct S%d s; s.v = %d; r += f%d(&s); }\n", i, i, i)
	})
}

// genReturnByValue emits n functions each constructing and returning a
// struct by value. The entry point reads the field in a scoped block so the
// call cannot be eliminated.
func genReturnByValue(b *strings.Builder, n int) {
	b.WriteString("struct Obj { int v; };\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(b,
			"struct Obj f%d(void) { struct Obj o; o.v = %d; return o; }\n", i, i)
	}

	genEntry(b, n, func(i int) string {
		return fmt.Sprintf("    { struct Obj o = f%d(); r += o.v; }\n", i)
	})
}

// genReturnByPointer mirrors genReturnByValue but each function holds a
// static instance and returns its address.
func genReturnByPointer(b *strings.Builder, n int) {
	b.WriteString("struct Obj { int v; };\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(b,
			"struct Obj *f%d(void) { static struct Obj o; o.v = %d; return &o; }\n",
			i, i)
	}

	genEntry(b, n, func(i int) string {
		return fmt.Sprintf("    { struct Obj *o = f%d(); r += o->v; }\n", i)
	})
}

// genEntry writes the single entry point, invoking unit 0..n-1 in order.
func genEntry(b *strings.Builder, n int, use func(i int) string) {
	b.WriteString("\nint main(void) {\n    int r = 0;\n")
	for i := 0; i < n; i++ {
		b.WriteString(use(i))
	}
	b.WriteString("    return r;\n}\n")
}
