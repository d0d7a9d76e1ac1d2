package repository

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// CreateAliasKeyCreatedIndex creates the created-desc index on the
// aliaskeys database backing the newest-first key listing
func CreateAliasKeyCreatedIndex(keysRepo Repository) error {
	indexPayload := map[string]interface{}{
		"index": map[string]interface{}{
			"fields": []map[string]interface{}{{"created": "desc"}},
		},
		"name": "aliaskey-created-desc-index",
		"ddoc": "aliaskey-created-desc-index",
		"type": "json",
	}
	c := keysRepo.GetClient().(*resty.Client)
	resp, rErr := c.R().SetBody(indexPayload).Post(fmt.Sprintf("%s/%s", AliasKeys, "_index"))
	if rErr != nil {
		return rErr
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}
