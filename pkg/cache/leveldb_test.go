/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package cache

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCache(t *testing.T) {
	dataDir := fmt.Sprintf("./%v", time.Now().Nanosecond())

	cache, err := NewCache(dataDir, 0, 0, "test")
	assert.NoError(t, err)

	defer os.RemoveAll(dataDir)

	// get nil
	_, err = cache.Get([]byte("nil"))
	if err.Error() != "leveldb: not found" {
		assert.NoError(t, err)
	}

	//put
	err = cache.Put([]byte("key1"), nil)
	assert.NoError(t, err)

	//has
	ok, err := cache.Has([]byte("key1"))
	assert.NoError(t, err)
	if !ok {
		assert.NoError(t, fmt.Errorf("cache.Has err"))
	}

	// get
	_, err = cache.Get([]byte("key1"))
	assert.NoError(t, err)

	// delete
	err = cache.Delete([]byte("key1"))
	assert.NoError(t, err)

	//has
	ok, err = cache.Has([]byte("key1"))
	assert.NoError(t, err)
	if ok {
		assert.NoError(t, fmt.Errorf("cache.Has err"))
	}

	const prefix = "prefix:"
	var keys = []string{"1", "2", "3"}
	for _, v := range keys {
		err = cache.Put([]byte(prefix+v), nil)
		assert.NoError(t, err)
	}
	err = cache.Put([]byte("1"), nil)
	assert.NoError(t, err)
	err = cache.Put([]byte("z"), nil)
	assert.NoError(t, err)
	err = cache.Put([]byte("prefix"), nil)
	assert.NoError(t, err)
	list, err := cache.QueryPrefixKeyList(prefix)
	assert.NoError(t, err)

	assert.Equal(t, keys, list)
}

func TestWriteBatch(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0, 0, "test")
	assert.NoError(t, err)
	defer cache.Close()

	err = cache.WriteBatch([]KV{
		{Key: []byte("index:f1"), Value: []byte("1")},
		{Key: []byte("index:f2"), Value: []byte("2")},
		{Key: []byte("search:aa"), Value: []byte("3")},
	})
	assert.NoError(t, err)

	val, err := cache.Get([]byte("index:f2"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), val)

	list, err := cache.QueryPrefixKeyList("index:")
	assert.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, list)

	_, err = cache.Get([]byte("index:f3"))
	assert.Equal(t, NotFound, err)
}

func TestCompact(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0, 0, "test")
	assert.NoError(t, err)
	defer cache.Close()

	for i := 0; i < 100; i++ {
		assert.NoError(t, cache.Put([]byte(fmt.Sprintf("k%03d", i)), []byte("v")))
	}
	for i := 0; i < 50; i++ {
		assert.NoError(t, cache.Delete([]byte(fmt.Sprintf("k%03d", i))))
	}
	assert.NoError(t, cache.Compact(nil, nil))

	list, err := cache.QueryPrefixKeyList("k")
	assert.NoError(t, err)
	assert.Len(t, list, 50)
	assert.Equal(t, "050", list[0])
}
