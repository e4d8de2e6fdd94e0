package parser

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// dumpProgram renders a program as indented JSON so snapshots stay
// readable and diff cleanly when the AST shape changes.
func dumpProgram(t *testing.T, src string) string {
	t.Helper()
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	data, err := json.MarshalIndent(prog, "", "  ")
	require.NoError(t, err)
	return string(data)
}

// TestWholeProgramSnapshots parses representative whole PHP programs and
// snapshots the resulting AST, catching incidental shape regressions across
// the statement, declaration, and expression recognizers together.
func TestWholeProgramSnapshots(t *testing.T) {
	samples := []struct {
		name string
		src  string
	}{
		{
			name: "class_with_promoted_constructor_and_trait",
			src: `<?php
namespace App\Model;

use App\Contracts\Comparable;

trait Loggable {
	public function log(string $msg): void {
		echo $msg;
	}
}

class Point implements Comparable {
	use Loggable;

	public function __construct(
		public readonly float $x,
		public readonly float $y = 0.0,
	) {}

	public function compareTo(self $other): int {
		return $this->x <=> $other->x;
	}
}
`,
		},
		{
			name: "control_flow_alt_syntax_and_match",
			src: `<?php
function classify(int $n): string {
	if ($n < 0):
		return "negative";
	elseif ($n === 0):
		return "zero";
	else:
		return "positive";
	endif;
}

function describe(int $n): string {
	return match (true) {
		$n < 0 => "negative",
		$n === 0 => "zero",
		default => "positive",
	};
}
`,
		},
		{
			name: "closures_arrow_functions_and_array_literals",
			src: `<?php
$add = fn($a, $b) => $a + $b;

$make = function (int $base) {
	return function (int $step) use ($base) {
		return $base + $step;
	};
};

$data = ["id" => 1, "tags" => ["a", "b", ...$extra]];
`,
		},
		{
			name: "enum_with_interface_and_backed_cases",
			src: `<?php
interface HasLabel {
	public function label(): string;
}

enum Suit: string implements HasLabel {
	case Hearts = "H";
	case Spades = "S";

	public function label(): string {
		return match ($this) {
			self::Hearts => "Hearts",
			self::Spades => "Spades",
		};
	}
}
`,
		},
		{
			name: "try_catch_finally_and_nullsafe_chains",
			src: `<?php
function load(?Repository $repo, int $id): ?Model {
	try {
		return $repo?->find($id)?->toModel();
	} catch (NotFoundException | ConnectionException $e) {
		error_log($e->getMessage());
		return null;
	} finally {
		$repo?->close();
	}
}
`,
		},
		{
			name: "heredoc_interpolation_and_attributes",
			src: "<?php\n" +
				"#[Route(\"/greet\")]\n" +
				"function greet(string $name): string {\n" +
				"\treturn <<<EOT\n" +
				"\tHello, {$name}!\n" +
				"\tWelcome.\n" +
				"\tEOT;\n" +
				"}\n",
		},
	}

	for _, sample := range samples {
		t.Run(sample.name, func(t *testing.T) {
			snaps.MatchSnapshot(t, dumpProgram(t, sample.src))
		})
	}
}
