package blockcache

// HookPos names a point in the cache where hooks are invoked.
type HookPos struct {
	Name string
}

// Hook positions of the lookup path.
var (
	HookPosBlockHitSame  = &HookPos{Name: "BlockHitSame"}
	HookPosBlockHitOther = &HookPos{Name: "BlockHitOther"}
	HookPosBlockMiss     = &HookPos{Name: "BlockMiss"}
)

// HookCtx describes one lookup to a hook.
type HookCtx struct {
	Pos     *HookPos
	Block   *Block
	Address uint32
}

// A Hook observes cache lookups. Hooks must not call back into the cache.
type Hook interface {
	Func(ctx HookCtx)
}

type hookable struct {
	hooks []Hook
}

// AcceptHook registers a hook. Registering the same hook twice panics.
func (h *hookable) AcceptHook(hook Hook) {
	for _, existing := range h.hooks {
		if existing == hook {
			panic("duplicated hook")
		}
	}

	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *hookable) NumHooks() int {
	return len(h.hooks)
}

func (h *hookable) invokeHook(pos *HookPos, block *Block, address uint32) {
	if len(h.hooks) == 0 {
		return
	}

	ctx := HookCtx{Pos: pos, Block: block, Address: address}
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
