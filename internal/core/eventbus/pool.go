package eventbus

import "github.com/lsevent/dispatcher/pkg/types"

// arenaPool implements types.Pool for exactly one moment: every Malloc and
// Strdup call routes through the installed MemoryFuncs so OOM injection
// reaches pool consumers the same way it reaches the dispatcher's own
// bookkeeping, and every token handed out is released in one release()
// call when the moment finishes.
//
// There is no arena or object-pool library anywhere in the dependency
// surface this module draws on; Go's garbage collector already reclaims
// the backing byte slices and strings normally, so this type exists purely
// to route the OOM-testing hooks and to give each moment an O(1) teardown,
// not to manage real memory itself.
type arenaPool struct {
	tokens []Token
}

func newArenaPool() *arenaPool {
	return &arenaPool{}
}

// newArenaPoolWithHint pre-sizes the arena's token bookkeeping for hint
// expected Malloc/Strdup calls. hint <= 0 behaves like newArenaPool.
func newArenaPoolWithHint(hint int) *arenaPool {
	if hint <= 0 {
		return newArenaPool()
	}
	return &arenaPool{tokens: make([]Token, 0, hint)}
}

// Malloc implements types.Pool.
func (p *arenaPool) Malloc(size int) ([]byte, error) {
	tok, ok := allocToken(size)
	if !ok {
		return nil, types.NewError("pool.malloc", types.KindNoMemory, types.ErrNoMemory)
	}
	p.tokens = append(p.tokens, tok)
	return make([]byte, size), nil
}

// Strdup implements types.Pool.
func (p *arenaPool) Strdup(s string) (string, error) {
	tok, ok := allocToken(len(s))
	if !ok {
		return "", types.NewError("pool.strdup", types.KindNoMemory, types.ErrNoMemory)
	}
	p.tokens = append(p.tokens, tok)
	return s, nil
}

// release frees every token this arena handed out. Called once, when the
// owning moment has finished dispatching.
func (p *arenaPool) release() {
	for _, tok := range p.tokens {
		freeToken(tok)
	}
	p.tokens = nil
}

var _ types.Pool = (*arenaPool)(nil)
