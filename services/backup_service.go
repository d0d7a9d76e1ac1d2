package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-kit/log/level"
	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/mailio/go-mailio-alias-server/util"
)

// BackupService snapshots the key ring to S3 as a CBOR document. Losing
// the secret keys orphans every alias ever handed out, so backups run
// on a cron schedule whenever a bucket is configured.
type BackupService struct {
	keyService *KeyService
	env        *types.Environment
}

func NewBackupService(keyService *KeyService, env *types.Environment) *BackupService {
	return &BackupService{
		keyService: keyService,
		env:        env,
	}
}

// BackupKeyRing uploads one snapshot of all stored keys. No-op when no
// storage bucket is configured.
func (bs *BackupService) BackupKeyRing(ctx context.Context) error {
	bucket := global.Conf.Storage.Bucket
	if bucket == "" || bs.env == nil || bs.env.S3Uploader == nil {
		return nil
	}

	keys, err := bs.keyService.ListKeys(ctx, 1000, 0)
	if err != nil {
		return err
	}
	backup := &types.KeyRingBackup{
		Created: time.Now().UTC().UnixMilli(),
		Domains: global.Conf.Alias.Domains,
		Keys:    keys,
	}
	encoded, mErr := cbor.Marshal(backup)
	if mErr != nil {
		return mErr
	}

	objectKey := fmt.Sprintf("backups/keyring-%s.cbor", util.DayUTC(time.Now()))
	_, uErr := bs.env.S3Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
		Body:   bytes.NewReader(encoded),
	})
	if uErr != nil {
		level.Error(global.Logger).Log("msg", "key ring backup failed", "bucket", bucket, "error", uErr)
		return uErr
	}
	level.Info(global.Logger).Log("msg", "key ring backed up", "bucket", bucket, "key", objectKey, "keys", len(keys))
	return nil
}
