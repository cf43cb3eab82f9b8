// Package segments builds the VLAN-to-segment mapping that drives the
// migration CSV. Segment names come either from the operator interactively
// or from a YAML mapping file for batch runs.
package segments

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Resolver supplies a segment name for a VLAN. The interactive prompt and the
// mapping file both implement it, which lets tests script the interaction.
type Resolver interface {
	ResolveSegment(vlan int) (string, error)
}

// BuildMapping resolves every VLAN in the given set, in order, into a
// VLAN → segment name mapping. The caller passes a deterministically sorted
// set so prompt order is reproducible.
func BuildMapping(vlans []int, r Resolver) (map[int]string, error) {
	mapping := make(map[int]string, len(vlans))
	for _, vlan := range vlans {
		name, err := r.ResolveSegment(vlan)
		if err != nil {
			return nil, fmt.Errorf("resolving segment for VLAN %d: %w", vlan, err)
		}
		mapping[vlan] = name
	}
	return mapping, nil
}

// PromptResolver asks the operator for one segment name per VLAN, reading
// lines from In and writing prompts to Out. Empty answers are re-prompted;
// an empty name is never accepted as a silent skip.
type PromptResolver struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// NewPromptResolver creates a PromptResolver over the given reader/writer,
// normally os.Stdin and os.Stdout.
func NewPromptResolver(in io.Reader, out io.Writer) *PromptResolver {
	return &PromptResolver{In: in, Out: out}
}

// ResolveSegment prompts until a non-empty segment name is entered.
// Returns an error if input ends before a name is given.
func (p *PromptResolver) ResolveSegment(vlan int) (string, error) {
	if p.scanner == nil {
		p.scanner = bufio.NewScanner(p.In)
	}
	for {
		fmt.Fprintf(p.Out, "  VLAN %d: Enter segment name: ", vlan)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("input closed before a segment name was entered for VLAN %d", vlan)
		}
		name := strings.TrimSpace(p.scanner.Text())
		if name != "" {
			return name, nil
		}
		fmt.Fprintln(p.Out, "  Segment name cannot be empty.")
	}
}
