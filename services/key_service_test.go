package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/mailio/go-mailio-alias-server/repository"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/stretchr/testify/assert"
)

var url = "http://localhost:5689"

func initMockSelector(t *testing.T, dbNames ...string) repository.DBSelector {
	httpmock.Activate()

	selector := repository.NewCouchDBSelector()
	for _, dbName := range dbNames {
		ok, _ := httpmock.NewJsonResponder(200, types.OK{IsOK: true})
		httpmock.RegisterResponder("HEAD", fmt.Sprintf("%s/%s", url, dbName), ok)
		httpmock.RegisterResponder("PUT", fmt.Sprintf("%s/%s", url, dbName), ok)

		db, err := repository.NewCouchDBRepository(url, dbName, "test", "test", true)
		if err != nil {
			t.Fatal(err)
		}
		selector.AddDB(db)
	}
	return selector
}

func registerFindKeys(keys ...*types.AliasKey) {
	docs, _ := httpmock.NewJsonResponder(200, map[string]interface{}{"docs": keys})
	httpmock.RegisterResponder("POST", fmt.Sprintf("%s/%s/_find", url, repository.AliasKeys), docs)
}

func TestCreateKey(t *testing.T) {
	selector := initMockSelector(t, repository.AliasKeys)
	defer httpmock.DeactivateAndReset()

	saved, _ := httpmock.NewJsonResponder(201, types.OK{IsOK: true})
	httpmock.RegisterResponder("PUT", fmt.Sprintf(`=~^%s/%s/.+`, url, repository.AliasKeys), saved)

	ks := NewKeyService(selector, types.NewEnvironment(nil))
	key, err := ks.CreateKey(context.Background(), "inbox@real.com", "work")
	if err != nil {
		t.Fatal(err)
	}
	assert.NotEmpty(t, key.ID)
	assert.Equal(t, 32, len(key.SecretKey))
	assert.Equal(t, "inbox@real.com", key.Recipient)
	assert.Equal(t, "work", key.Label)
	assert.True(t, key.Enabled)
	assert.True(t, key.Created > 0)
}

func TestCreateKeyUniqueSecrets(t *testing.T) {
	selector := initMockSelector(t, repository.AliasKeys)
	defer httpmock.DeactivateAndReset()

	saved, _ := httpmock.NewJsonResponder(201, types.OK{IsOK: true})
	httpmock.RegisterResponder("PUT", fmt.Sprintf(`=~^%s/%s/.+`, url, repository.AliasKeys), saved)

	ks := NewKeyService(selector, types.NewEnvironment(nil))
	first, _ := ks.CreateKey(context.Background(), "inbox@real.com", "")
	second, _ := ks.CreateKey(context.Background(), "inbox@real.com", "")
	assert.NotEqual(t, first.SecretKey, second.SecretKey)
}

func TestGetKey(t *testing.T) {
	selector := initMockSelector(t, repository.AliasKeys)
	defer httpmock.DeactivateAndReset()

	doc, _ := httpmock.NewJsonResponder(200, types.AliasKey{
		BaseDocument: types.BaseDocument{UnderscoreID: "key1", UnderscoreRev: "1-abc"},
		SecretKey:    "my-secret",
		Recipient:    "inbox@real.com",
		Enabled:      true,
	})
	httpmock.RegisterResponder("GET", fmt.Sprintf("%s/%s/%s", url, repository.AliasKeys, "key1"), doc)

	ks := NewKeyService(selector, types.NewEnvironment(nil))
	key, err := ks.GetKey(context.Background(), "key1")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "key1", key.ID)
	assert.Equal(t, "my-secret", key.SecretKey)
	assert.Equal(t, "inbox@real.com", key.Recipient)
}

// the listing query must ask CouchDB for newest-first ordering instead
// of relying on index order
func TestListKeysQuerySortsNewestFirst(t *testing.T) {
	selector := initMockSelector(t, repository.AliasKeys)
	defer httpmock.DeactivateAndReset()

	var query map[string]interface{}
	httpmock.RegisterResponder("POST", fmt.Sprintf("%s/%s/_find", url, repository.AliasKeys),
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&query); err != nil {
				return nil, err
			}
			return httpmock.NewJsonResponse(200, map[string]interface{}{"docs": []*types.AliasKey{}})
		})

	ks := NewKeyService(selector, types.NewEnvironment(nil))
	_, err := ks.ListKeys(context.Background(), 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []interface{}{map[string]interface{}{"created": "desc"}}, query["sort"])
}

func TestKeyRingSkipsDisabledKeys(t *testing.T) {
	selector := initMockSelector(t, repository.AliasKeys)
	defer httpmock.DeactivateAndReset()

	registerFindKeys(
		&types.AliasKey{BaseDocument: types.BaseDocument{UnderscoreID: "key1"}, SecretKey: "enabled-secret", Recipient: "inbox@real.com", Enabled: true},
		&types.AliasKey{BaseDocument: types.BaseDocument{UnderscoreID: "key2"}, SecretKey: "disabled-secret", Recipient: "old@real.com", Enabled: false},
	)

	ks := NewKeyService(selector, types.NewEnvironment(nil))
	ring, err := ks.KeyRing(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(ring))
	assert.Equal(t, "inbox@real.com", ring["enabled-secret"])
}
