package lob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceIndexInsertKeepsDescendingOrder(t *testing.T) {
	p := newPriceIndex(8)

	pos, found, _ := p.find(100)
	require.False(t, found)
	p.insert(pos, priceLevelEntry{price: 100, level: 1})

	pos, found, _ = p.find(102)
	require.False(t, found)
	assert.Equal(t, 0, pos, "higher price must land at index 0")
	p.insert(pos, priceLevelEntry{price: 102, level: 2})

	pos, found, _ = p.find(101)
	require.False(t, found)
	p.insert(pos, priceLevelEntry{price: 101, level: 3})

	require.Equal(t, 3, p.size)
	assert.Equal(t, Price(102), p.entries[0].price)
	assert.Equal(t, Price(101), p.entries[1].price)
	assert.Equal(t, Price(100), p.entries[2].price)
}

func TestPriceIndexLeastAggressiveGoesToTail(t *testing.T) {
	p := newPriceIndex(8)
	pos, _, _ := p.find(100)
	p.insert(pos, priceLevelEntry{price: 100, level: 1})

	pos, found, _ := p.find(50)
	require.False(t, found)
	assert.Equal(t, 1, pos)
}

func TestPriceIndexFindReusesExistingLevel(t *testing.T) {
	p := newPriceIndex(8)
	pos, _, _ := p.find(100)
	p.insert(pos, priceLevelEntry{price: 100, level: 7})

	_, found, level := p.find(100)
	require.True(t, found)
	assert.Equal(t, LevelID(7), level)
}

func TestPriceIndexErase(t *testing.T) {
	p := newPriceIndex(8)
	for _, price := range []Price{102, 101, 100} {
		pos, _, _ := p.find(price)
		p.insert(pos, priceLevelEntry{price: price, level: LevelID(price)})
	}

	pos, found, _ := p.find(101)
	require.True(t, found)
	p.erase(pos)

	require.Equal(t, 2, p.size)
	assert.Equal(t, Price(102), p.entries[0].price)
	assert.Equal(t, Price(100), p.entries[1].price)
}

func TestPriceIndexTopIsEmptyWhenNoLevels(t *testing.T) {
	p := newPriceIndex(4)
	_, ok := p.top()
	assert.False(t, ok)
}

func TestPriceIndexInsertExhaustionPanics(t *testing.T) {
	p := newPriceIndex(1)
	pos, _, _ := p.find(10)
	p.insert(pos, priceLevelEntry{price: 10, level: 1})

	pos, _, _ = p.find(20)
	assert.Panics(t, func() {
		p.insert(pos, priceLevelEntry{price: 20, level: 2})
	})
}
