//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"certledger/internal/platform/logger"
	"certledger/internal/registry/events"
	"certledger/internal/registry/models"
	"certledger/pkg/testutil/containers"
)

const testTopic = "certledger.registry.events.test"

type KafkaPublisherSuite struct {
	suite.Suite
	broker    string
	publisher *events.KafkaPublisher
	consumer  *kgo.Client
	ctx       context.Context
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.ctx = context.Background()
	s.broker = containers.NewRedpandaContainer(s.T()).Broker

	admin, err := kgo.NewClient(kgo.SeedBrokers(s.broker))
	s.Require().NoError(err)
	defer admin.Close()
	_, err = kadm.NewClient(admin).CreateTopic(s.ctx, 1, 1, nil, testTopic)
	s.Require().NoError(err)

	s.publisher, err = events.NewKafkaPublisher([]string{s.broker}, testTopic, logger.New())
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = s.publisher.Close() })

	s.consumer, err = kgo.NewClient(
		kgo.SeedBrokers(s.broker),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	s.T().Cleanup(s.consumer.Close)
}

func TestKafkaPublisherSuite(t *testing.T) {
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) consume(n int) []*kgo.Record {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	var records []*kgo.Record
	for len(records) < n {
		fetches := s.consumer.PollFetches(ctx)
		s.Require().NoError(fetches.Err())
		records = append(records, fetches.Records()...)
	}
	return records
}

func (s *KafkaPublisherSuite) TestEmitDeliversOrderedRecords() {
	issued := events.CertificateIssued(&models.Certificate{
		ID:          1,
		HolderName:  "Alice",
		SubjectName: "Algorithms",
		Fingerprint: "QmHash",
		Holder:      "0xholder",
		IssuedAt:    time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		IssuedBy:    "0xowner",
	})
	revoked := events.CertificateRevoked(1, "0xowner")
	adminGrant := events.AdminUpdated("0xadmin", true, "0xowner")

	s.Require().NoError(s.publisher.Emit(s.ctx, issued))
	s.Require().NoError(s.publisher.Emit(s.ctx, revoked))
	s.Require().NoError(s.publisher.Emit(s.ctx, adminGrant))

	records := s.consume(3)
	s.Require().Len(records, 3)

	// Certificate events share a record key so they land in one partition
	// in emission order.
	s.Equal("1", string(records[0].Key))
	s.Equal("1", string(records[1].Key))
	s.Equal("0xadmin", string(records[2].Key))

	var first events.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &first))
	s.Equal(events.TypeCertificateIssued, first.Type)
	s.Equal(int64(1), first.CertificateID)
	s.Equal("QmHash", first.Fingerprint)
	s.False(first.Timestamp.IsZero())

	var second events.Event
	s.Require().NoError(json.Unmarshal(records[1].Value, &second))
	s.Equal(events.TypeCertificateRevoked, second.Type)
	s.Equal(models.Identity("0xowner"), second.Actor)

	var third events.Event
	s.Require().NoError(json.Unmarshal(records[2].Value, &third))
	s.Equal(events.TypeAdminUpdated, third.Type)
	s.Equal(models.Identity("0xadmin"), third.Admin)
	s.True(third.Enabled)
}
