package site

// Dedupe returns distinct block types in order of first appearance.
func Dedupe(blocks []Block) []string {
	types := make([]string, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		if _, ok := seen[b.Type]; ok {
			continue
		}
		seen[b.Type] = struct{}{}
		types = append(types, b.Type)
	}
	return types
}

// Types returns distinct block types used by the site.
func (s *Site) Types() []string {
	return Dedupe(s.Blocks)
}

// Instances returns blocks of given type in page order.
func (s *Site) Instances(blockType string) []Block {
	var out []Block
	for _, b := range s.Blocks {
		if b.Type == blockType {
			out = append(out, b)
		}
	}
	return out
}
