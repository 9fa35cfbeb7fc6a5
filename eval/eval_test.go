package eval

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vv4t/cirno/internal/source"
	"github.com/vv4t/cirno/lex"
	"github.com/vv4t/cirno/parse"
)

// run lexes, parses and evaluates src, returning captured stdout and
// whether the whole pipeline succeeded.
func run(t *testing.T, src string) (string, bool) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cirno")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	var out bytes.Buffer
	in := New(&out)

	lx := lex.New(source.NewSet(), in.Diags)
	head, err := lx.Lex(path)
	require.NoError(t, err)
	if in.Diags.Failed() {
		return out.String(), false
	}

	tree := parse.Parse(head, in.Diags)
	if in.Diags.Failed() {
		return out.String(), false
	}

	ok := in.Run(tree)
	return out.String(), ok && !in.Diags.Failed()
}

func TestArithmeticAndPrint(t *testing.T) {
	out, ok := run(t, "print 1 + 2 * 3;")
	require.True(t, ok)
	require.Equal(t, "7 \n", out)
}

func TestStringConcatAndCompoundAssign(t *testing.T) {
	out, ok := run(t, `
		string s = "a";
		s += "b";
		print s;
	`)
	require.True(t, ok)
	require.Equal(t, "ab \n", out)
}

func TestIfElse(t *testing.T) {
	out, ok := run(t, `
		i32 x = 5;
		if (x > 3) print 1; else print 0;
	`)
	require.True(t, ok)
	require.Equal(t, "1 \n", out)
}

func TestWhileLoopWithBreakAndContinue(t *testing.T) {
	out, ok := run(t, `
		i32 i = 0;
		while (i < 10) {
			i = i + 1;
			if (i == 3) continue;
			if (i == 6) break;
			print i;
		}
	`)
	require.True(t, ok)
	require.Equal(t, "1 \n2 \n4 \n5 \n", out)
}

func TestForLoop(t *testing.T) {
	out, ok := run(t, `
		for (i32 i = 0; i < 3; i++) print i;
	`)
	require.True(t, ok)
	require.Equal(t, "0 \n1 \n2 \n", out)
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, ok := run(t, `
		fn add(i32 a, i32 b): i32 { return a + b; }
		print add(2, 3);
	`)
	require.True(t, ok)
	require.Equal(t, "5 \n", out)
}

func TestForwardDeclarationIsUpdatedByLaterDefinition(t *testing.T) {
	out, ok := run(t, `
		fn greet(): i32;
		fn main(): i32 { return greet(); }
		fn greet(): i32 { return 42; }
		print main();
	`)
	require.True(t, ok)
	require.Equal(t, "42 \n", out)
}

func TestClassFieldsAndConstructorAndMethods(t *testing.T) {
	out, ok := run(t, `
		class_def Point {
			i32 x;
			i32 y;
			fn +new(i32 px, i32 py) {
				this.x = px;
				this.y = py;
			}
			fn sum(): i32 { return this.x + this.y; }
		};
		class Point p = new Point(3, 4);
		print p.sum();
	`)
	require.True(t, ok)
	require.Equal(t, "7 \n", out)
}

func TestArrayInitListAndIndexAndLength(t *testing.T) {
	out, ok := run(t, `
		i32[] a = array_init<i32>{1, 2, 3};
		print a.length;
		print a[0] + a[2];
	`)
	require.True(t, ok)
	require.Equal(t, "3 \n4 \n", out)
}

func TestArrayInitSizeDefaultsToZero(t *testing.T) {
	out, ok := run(t, `
		i32[] a = array_init<i32>(3);
		print a[1];
	`)
	require.True(t, ok)
	require.Equal(t, "0 \n", out)
}

func TestArrayOutOfBoundsIsAnError(t *testing.T) {
	_, ok := run(t, `
		i32[] a = array_init<i32>(2);
		print a[5];
	`)
	require.False(t, ok)
}

func TestBreakOutsideLoopIsAnError(t *testing.T) {
	_, ok := run(t, "break;")
	require.False(t, ok)
}

func TestDivisionByZeroIsAnError(t *testing.T) {
	_, ok := run(t, "print 1 / 0;")
	require.False(t, ok)
}

func TestMixedIntFloatPromotesToFloat(t *testing.T) {
	out, ok := run(t, "print 1 + 2.5;")
	require.True(t, ok)
	require.Equal(t, "3.500000 \n", out)
}

func TestLogicalOperatorsAreNotShortCircuited(t *testing.T) {
	out, ok := run(t, `
		fn sideEffect(): i32 { print 99; return 1; }
		i32 r = 0 && sideEffect();
		print r;
	`)
	require.True(t, ok)
	require.Equal(t, "99 \n0 \n", out)
}

func TestRecursiveFunctionCall(t *testing.T) {
	out, ok := run(t, `
		fn fact(i32 n): i32 {
			if (n <= 1) return 1;
			return n * fact(n - 1);
		}
		print fact(5);
	`)
	require.True(t, ok)
	require.Equal(t, "120 \n", out)
}

func TestStringEqualityIsByReference(t *testing.T) {
	out, ok := run(t, `
		string a = "hi";
		string b = "hi";
		print a == b;
	`)
	require.True(t, ok)
	require.Equal(t, "0 \n", out)
}

func TestRedefinitionOfLocalVarIsAnError(t *testing.T) {
	_, ok := run(t, `
		i32 x = 1;
		i32 x = 2;
	`)
	require.False(t, ok)
}

// TestNewConstructorSurvivesGCDuringArgumentEvaluation guards against a
// fresh `new ClassName` receiver being collected before its constructor
// binds it to `this`: the argument expression itself makes a nested call,
// whose own GC safe point must not see the pending instance as garbage.
func TestNewConstructorSurvivesGCDuringArgumentEvaluation(t *testing.T) {
	out, ok := run(t, `
		class_def Box {
			i32 v;
			fn +new(i32 a) { this.v = a; }
			fn get(): i32 { return this.v; }
		};
		fn identity(i32 a): i32 { return a; }
		class Box b = new Box(identity(7));
		print b.get();
	`)
	require.True(t, ok)
	require.Equal(t, "7 \n", out)
}
