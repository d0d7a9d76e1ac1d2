package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mailio/go-mailio-alias-server/email"
	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/repository"
	"github.com/mailio/go-mailio-alias-server/services"
	"github.com/mailio/go-mailio-alias-server/types"
)

// Register delivery providers from config (currently only mailgun)
func RegisterForwarders(conf *global.Config) {
	for _, fw := range conf.Forwarders {
		if fw.Provider == "mailgun" {
			forwarder := email.NewMailgunForwarder(fw.ApiBaseUrl, fw.Domain, fw.SendApiKey)
			email.RegisterForwarder(fw.Domain, forwarder)
		}
	}
}

// Configure DB Repositories and create DB Selector
func ConfigDBSelector() repository.DBSelector {
	// configure Repository (couchDB)
	repoUrl := global.Conf.CouchDB.Scheme + "://" + global.Conf.CouchDB.Host + ":" + strconv.Itoa(global.Conf.CouchDB.Port)
	aliasKeysRepo, keysRepoErr := repository.NewCouchDBRepository(repoUrl, repository.AliasKeys, global.Conf.CouchDB.Username, global.Conf.CouchDB.Password, false)
	aliasStatsRepo, statsRepoErr := repository.NewCouchDBRepository(repoUrl, repository.AliasStats, global.Conf.CouchDB.Username, global.Conf.CouchDB.Password, false)

	repoErr := errors.Join(keysRepoErr, statsRepoErr)
	if repoErr != nil {
		global.Logger.Log("error", "Failed to create repositories", "error", repoErr.Error())
		panic(repoErr)
	}

	// ALIAS KEY INDEXES
	icKeysErr := repository.CreateAliasKeyCreatedIndex(aliasKeysRepo)
	if icKeysErr != nil {
		panic(icKeysErr)
	}

	// REPOSITORY definitions
	dbSelector := repository.NewCouchDBSelector()
	dbSelector.AddDB(aliasKeysRepo)
	dbSelector.AddDB(aliasStatsRepo)

	return dbSelector
}

// ConfigCronJobs schedules the statistics flush and the key ring backup
func ConfigCronJobs(dbSelector *repository.CouchDBSelector, env *types.Environment) {
	keyService := services.NewKeyService(dbSelector, env)
	statsService := services.NewStatisticsService(dbSelector, env)
	backupService := services.NewBackupService(keyService, env)

	flushMinutes := global.Conf.Statistics.FlushMinutes
	if flushMinutes <= 0 {
		flushMinutes = 10
	}
	env.Cron.AddFunc(fmt.Sprintf("@every %dm", flushMinutes), func() {
		if err := statsService.FlushStatistics(context.Background()); err != nil {
			global.Logger.Log("error", "failed to flush statistics", "error", err.Error())
		}
	})

	backupHours := global.Conf.Statistics.BackupHours
	if backupHours <= 0 {
		backupHours = 24
	}
	env.Cron.AddFunc(fmt.Sprintf("@every %dh", backupHours), func() {
		if err := backupService.BackupKeyRing(context.Background()); err != nil {
			global.Logger.Log("error", "failed to backup key ring", "error", err.Error())
		}
	})

	env.Cron.Start()
}

func ConfigS3Storage(conf *global.Config, env *types.Environment) {
	if conf.Storage.Bucket == "" {
		global.Logger.Log("msg", "no storage bucket configured, key ring backups disabled")
		return
	}
	// configure S3 storage
	credentials := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(conf.Storage.Key, conf.Storage.Secret, ""))
	awsConf, err := config.LoadDefaultConfig(context.TODO(), config.WithCredentialsProvider(credentials), config.WithRegion(conf.Storage.Region))
	if err != nil {
		panic(err)
	}
	s3Client := s3.NewFromConfig(awsConf)
	uploader := manager.NewUploader(s3Client)
	env.AddS3Uploader(uploader)

	env.S3Client = s3Client
}
