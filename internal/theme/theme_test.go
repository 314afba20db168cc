package theme

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	def := Resolve(DefaultID)

	for _, id := range []string{"turquoise", "", "   ", "BLUEISH"} {
		assert.Equal(t, def, Resolve(id), "id %q", id)
	}
}

func TestResolveKnown(t *testing.T) {
	for _, id := range IDs() {
		p := Resolve(id)
		assert.Equal(t, id, p.ID)
		assert.True(t, Known(id))
	}
	assert.Len(t, IDs(), 6)
	assert.Equal(t, "#27ae60", Resolve("green").Primary.Hex())
	assert.Equal(t, "#2d3436", Resolve("blue").HeaderBackground.Hex())
}

func TestResolveAliases(t *testing.T) {
	assert.Equal(t, Resolve("green"), Resolve("vert"))
	assert.Equal(t, Resolve("purple"), Resolve("Violet"))
	assert.True(t, Known("noir"))
	assert.False(t, Known("turquoise"))
}

func TestIDsReturnsCopy(t *testing.T) {
	ids := IDs()
	ids[0] = "mutated"
	assert.Equal(t, "blue", IDs()[0])
}

func TestResolveConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := IDs()[i%6]
			assert.Equal(t, id, Resolve(id).ID)
		}(i)
	}
	wg.Wait()
}

func TestMustHex(t *testing.T) {
	assert.Equal(t, Color{0x3d, 0xa0, 0xff}, MustHex("#3da0ff"))
	assert.Panics(t, func() { MustHex("blue") })
}
