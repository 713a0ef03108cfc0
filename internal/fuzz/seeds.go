package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса

// languageSeeds cover the constructs the front end understands.
var languageSeeds = []string{
	"",
	"class C { }",
	`using Xunit;
public class T
{
    [Theory]
    [InlineData(1, "a", null)]
    [InlineData(-1L, @"b""c", 'x')]
    public void M(int a, string b, object c) { }
}`,
	`namespace Acme;
public enum Color { Red = 1, Green = Red << 1 }
public interface IShape { }
public struct Money : IShape { public const int Zero = 0; }
public record Point(int X, int Y);`,
	`using Col = Acme.Color;
using static System.Math;
namespace Acme.Tests {
    public class G<T> where T : class {
        [Theory, InlineData(new[] { 1, 2 }, typeof(List<int>), nameof(M))]
        [InlineData(data: new object[] { (short)3, 0x1Fu, 1e3m })]
        public static void M(int[] xs, System.Type t, params object[] rest) { }
    }
}`,
	`class P { void F(ref int a, out int b, in int c, this int d, int e = 5) { int x = 1; { { } } } }`,
	"/* unterminated",
	`"unterminated string`,
	"[InlineData(",
	"class C { [Theory] [InlineData(1,,2)] void M(int a) {",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.cs файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".cs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
