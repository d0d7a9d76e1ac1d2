package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/stretchr/testify/assert"
)

var url = "http://localhost:5689"

func InitMockDatabase(dbName string) (Repository, error) {
	httpmock.Activate()

	ok, mErr := httpmock.NewJsonResponder(200, types.OK{IsOK: true})
	if mErr != nil {
		return nil, mErr
	}
	httpmock.RegisterResponder("HEAD", fmt.Sprintf("%s/%s", url, dbName), ok)
	httpmock.RegisterResponder("PUT", fmt.Sprintf("%s/%s", url, dbName), ok)

	db, err := NewCouchDBRepository(url, dbName, "test", "test", true)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func deactivateMock() {
	httpmock.DeactivateAndReset()
}

func TestInitNewDatabase(t *testing.T) {
	db, err := InitMockDatabase(AliasKeys)
	defer deactivateMock()
	if err != nil {
		t.Fatal(err)
	}
	if db == nil {
		t.Fatal("db is nil")
	}
	assert.Equal(t, AliasKeys, db.GetDBName())
}

func TestSaveAndGetByID(t *testing.T) {
	db, err := InitMockDatabase(AliasKeys)
	defer deactivateMock()
	if err != nil {
		t.Fatal(err)
	}

	saved, _ := httpmock.NewJsonResponder(201, types.OK{IsOK: true})
	httpmock.RegisterResponder("PUT", fmt.Sprintf("%s/%s/%s", url, AliasKeys, "key1"), saved)

	doc, _ := httpmock.NewJsonResponder(200, types.AliasKey{
		BaseDocument: types.BaseDocument{UnderscoreID: "key1"},
		SecretKey:    "my-secret",
		Recipient:    "inbox@real.com",
		Enabled:      true,
	})
	httpmock.RegisterResponder("GET", fmt.Sprintf("%s/%s/%s", url, AliasKeys, "key1"), doc)

	sErr := db.Save(context.Background(), "key1", &types.AliasKey{SecretKey: "my-secret", Recipient: "inbox@real.com"})
	if sErr != nil {
		t.Fatal(sErr)
	}
	res, gErr := db.GetByID(context.Background(), "key1")
	if gErr != nil {
		t.Fatal(gErr)
	}
	var key types.AliasKey
	if mErr := MapToObject(res, &key); mErr != nil {
		t.Fatal(mErr)
	}
	assert.Equal(t, "my-secret", key.SecretKey)
	assert.Equal(t, "inbox@real.com", key.Recipient)
}

func TestGetByIDNotFound(t *testing.T) {
	db, err := InitMockDatabase(AliasKeys)
	defer deactivateMock()
	if err != nil {
		t.Fatal(err)
	}

	notFound, _ := httpmock.NewJsonResponder(404, types.CouchDBError{Error: "not_found", Reason: "missing"})
	httpmock.RegisterResponder("GET", fmt.Sprintf("%s/%s/%s", url, AliasKeys, "nope"), notFound)

	_, gErr := db.GetByID(context.Background(), "nope")
	assert.True(t, errors.Is(gErr, types.ErrNotFound))
}

func TestUpdateConflict(t *testing.T) {
	db, err := InitMockDatabase(AliasKeys)
	defer deactivateMock()
	if err != nil {
		t.Fatal(err)
	}

	conflict, _ := httpmock.NewJsonResponder(409, types.CouchDBError{Error: "conflict", Reason: "document update conflict"})
	httpmock.RegisterResponder("PUT", fmt.Sprintf("%s/%s/%s", url, AliasKeys, "key1"), conflict)

	uErr := db.Update(context.Background(), "key1", &types.AliasKey{SecretKey: "my-secret"})
	assert.True(t, errors.Is(uErr, types.ErrConflict))
}

func TestChooseDB(t *testing.T) {
	db, err := InitMockDatabase(AliasKeys)
	defer deactivateMock()
	if err != nil {
		t.Fatal(err)
	}
	selector := NewCouchDBSelector()
	selector.AddDB(db)

	chosen, cErr := selector.ChooseDB(AliasKeys)
	if cErr != nil {
		t.Fatal(cErr)
	}
	assert.Equal(t, AliasKeys, chosen.GetDBName())

	_, missErr := selector.ChooseDB("nope")
	assert.True(t, errors.Is(missErr, types.ErrNotFound))
}
