package coverage

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/types"
)

// FileDetail runs gcov for one source file and parses the resulting .gcov
// file into per-line coverage detail. A nil result with a non-nil error
// means detail is unavailable for this file; callers treat that as advisory
// and continue.
func (r *Runner) FileDetail(sourceFile string) (*types.FileCoverage, error) {
	cmd := exec.Command("gcov", sourceFile)
	cmd.Dir = r.coverageDir
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("gcov %s: %s", sourceFile, tailLines(out, 10))
	}

	gcovPath := filepath.Join(r.coverageDir, filepath.Base(sourceFile)+".gcov")
	return parseGcovFile(gcovPath, sourceFile)
}

// parseGcovFile reads a .gcov file and counts executable, covered, and
// uncovered lines. The gcov line format is "count:lineno:source"; a count of
// "-" marks a non-executable line and "#####" an unexecuted one.
func parseGcovFile(gcovPath, originalFile string) (*types.FileCoverage, error) {
	f, err := os.Open(gcovPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", gcovPath, err)
	}
	defer f.Close()

	fc := &types.FileCoverage{FilePath: originalFile}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ":", 3)
		if len(parts) < 3 {
			continue
		}

		count := strings.TrimSpace(parts[0])
		lineNo, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || lineNo == 0 || count == "-" {
			continue
		}

		fc.LinesTotal++
		if count == "#####" {
			fc.UncoveredLines = append(fc.UncoveredLines, lineNo)
		} else if n, err := strconv.Atoi(count); err == nil && n > 0 {
			fc.LinesCovered++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", gcovPath, err)
	}

	if fc.LinesTotal > 0 {
		fc.CoveragePercent = float64(fc.LinesCovered) / float64(fc.LinesTotal) * 100
	}
	return fc, nil
}
