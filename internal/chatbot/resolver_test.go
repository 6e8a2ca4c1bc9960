package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/clinic"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/doctors"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/equipment"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/vouchers"
)

type fakeDoctorStore struct {
	doctors.Store
	recent      []doctors.Doctor
	specialties []string
	err         error
}

func (f *fakeDoctorStore) RecentActive(ctx context.Context, limit int64) ([]doctors.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	if int64(len(f.recent)) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeDoctorStore) DistinctActiveSpecialties(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.specialties, nil
}

type fakeEquipmentStore struct {
	equipment.Store
	recent []equipment.Item
	err    error
}

func (f *fakeEquipmentStore) RecentActive(ctx context.Context, limit int64) ([]equipment.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	if int64(len(f.recent)) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

type fakeVoucherStore struct {
	vouchers.Store
	active []vouchers.Voucher
	err    error
}

func (f *fakeVoucherStore) ListActive(ctx context.Context, limit int64) ([]vouchers.Voucher, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.active, nil
}

type stubProvider struct {
	name   string
	reply  string
	called int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Reply(ctx context.Context, message string) string {
	s.called++
	return s.reply
}

func testClinic() clinic.Info { return clinic.DefaultInfo() }

func newTestData(docs *fakeDoctorStore, equip *fakeEquipmentStore, vouch *fakeVoucherStore) *DataResponder {
	if docs == nil {
		docs = &fakeDoctorStore{}
	}
	if equip == nil {
		equip = &fakeEquipmentStore{}
	}
	if vouch == nil {
		vouch = &fakeVoucherStore{}
	}
	return NewDataResponder(docs, equip, vouch, testClinic(), nil)
}

func TestResolverDataStepWins(t *testing.T) {
	docs := &fakeDoctorStore{recent: []doctors.Doctor{
		{Name: "BS. Trần Minh Giang", Specialty: "Nội khoa", IsActive: true},
	}}
	data := newTestData(docs, nil, nil)
	provider := &stubProvider{name: "gemini", reply: "không nên tới đây"}
	resolver := NewResolver(data, []Provider{provider}, NewRuleResponder(testClinic()), nil)

	reply, step := resolver.Resolve(context.Background(), "Cho tôi hỏi về bác sĩ của phòng khám")

	assert.Equal(t, StepData, step)
	assert.Equal(t, data.Respond(context.Background(), "bác sĩ"), reply)
	assert.Zero(t, provider.called, "provider must not be invoked when data answered")
}

func TestResolverFallsToRulesWithoutProviders(t *testing.T) {
	resolver := NewResolver(newTestData(nil, nil, nil), nil, NewRuleResponder(testClinic()), nil)

	message := "tôi muốn hỏi một chuyện không liên quan"
	reply, step := resolver.Resolve(context.Background(), message)

	assert.Equal(t, StepRules, step)
	assert.Equal(t, NewRuleResponder(testClinic()).Respond(message), reply)
	assert.NotEmpty(t, reply)
}

func TestResolverProviderFallback(t *testing.T) {
	failing := &stubProvider{name: "gemini", reply: ""}
	backup := &stubProvider{name: "openai", reply: "Phòng khám rất hân hạnh được đón tiếp quý khách."}
	resolver := NewResolver(newTestData(nil, nil, nil), []Provider{failing, backup}, NewRuleResponder(testClinic()), nil)

	reply, step := resolver.Resolve(context.Background(), "một câu hỏi rất lạ")

	assert.Equal(t, 1, failing.called)
	assert.Equal(t, 1, backup.called)
	assert.Equal(t, "openai", step)
	assert.Equal(t, backup.reply, reply)
}

func TestResolverDataErrorFallsThrough(t *testing.T) {
	docs := &fakeDoctorStore{err: errors.New("mongo down")}
	data := newTestData(docs, nil, nil)
	provider := &stubProvider{name: "gemini", reply: "đáp án từ mô hình"}
	resolver := NewResolver(data, []Provider{provider}, NewRuleResponder(testClinic()), nil)

	reply, step := resolver.Resolve(context.Background(), "danh sách bác sĩ")

	assert.Equal(t, "gemini", step)
	assert.Equal(t, provider.reply, reply)
}

func TestResolverNeverEmpty(t *testing.T) {
	data := newTestData(&fakeDoctorStore{err: errors.New("down")}, nil, nil)
	empty := &stubProvider{name: "gemini"}
	resolver := NewResolver(data, []Provider{empty}, NewRuleResponder(testClinic()), nil)

	reply, step := resolver.Resolve(context.Background(), "bác sĩ")
	assert.Equal(t, StepRules, step)
	assert.NotEmpty(t, reply)
}

func TestDataResponderEmptyDataStillAnswers(t *testing.T) {
	data := newTestData(nil, nil, nil)

	reply := data.Respond(context.Background(), "phòng khám có bác sĩ nào")
	assert.NotEmpty(t, reply)
	assert.Contains(t, reply, testClinic().Hotline)
}

func TestDataResponderNoKeywordIsNoMatch(t *testing.T) {
	data := newTestData(nil, nil, nil)
	assert.Empty(t, data.Respond(context.Background(), "thời tiết hôm nay thế nào"))
}

func TestDataResponderPriority(t *testing.T) {
	docs := &fakeDoctorStore{
		recent:      []doctors.Doctor{{Name: "BS. Lê Thu Hà", Specialty: "Da liễu", IsActive: true}},
		specialties: []string{"Da liễu"},
	}
	data := newTestData(docs, nil, nil)

	// Mentions both doctors and hours; the doctor group is tried first.
	reply := data.Respond(context.Background(), "bác sĩ làm việc mấy giờ")
	assert.Contains(t, reply, "BS. Lê Thu Hà")
}

func TestDataResponderCapsDoctorList(t *testing.T) {
	docs := &fakeDoctorStore{recent: []doctors.Doctor{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"},
	}}
	data := newTestData(docs, nil, nil)

	reply := data.Respond(context.Background(), "bác sĩ")
	assert.Equal(t, 4, strings.Count(reply, "- "))
}

func TestDataResponderPricePromos(t *testing.T) {
	vouch := &fakeVoucherStore{active: []vouchers.Voucher{
		{Code: "KHAM20", DiscountPercent: 20},
	}}
	data := newTestData(nil, nil, vouch)

	reply := data.Respond(context.Background(), "chi phí khám bao nhiêu")
	assert.Contains(t, reply, "KHAM20")

	// A voucher lookup failure must not block the price answer.
	broken := newTestData(nil, nil, &fakeVoucherStore{err: errors.New("down")})
	reply = broken.Respond(context.Background(), "chi phí khám bao nhiêu")
	assert.NotEmpty(t, reply)
	assert.NotContains(t, reply, "KHAM20")
}

func TestRuleResponderAlwaysAnswers(t *testing.T) {
	rules := NewRuleResponder(testClinic())
	for _, msg := range []string{"xin chào", "mấy giờ mở cửa", "địa chỉ ở đâu", "hotline", "dịch vụ", "bảo hiểm", "giá khám", "!!!", ""} {
		assert.NotEmpty(t, rules.Respond(msg), "message %q", msg)
	}
}

func TestKnowledgeSnapshot(t *testing.T) {
	docs := &fakeDoctorStore{
		recent:      []doctors.Doctor{{Name: "BS. Trần Minh Giang", Specialty: "Nội khoa"}},
		specialties: []string{"Nội khoa", "Da liễu"},
	}
	equip := &fakeEquipmentStore{recent: []equipment.Item{{Name: "Máy siêu âm 4D", Status: equipment.StatusOperational}}}
	kb := NewKnowledgeBase(docs, equip, testClinic(), nil)

	snapshot := kb.Snapshot(context.Background())
	require.NotEmpty(t, snapshot)
	assert.Contains(t, snapshot, "BS. Trần Minh Giang")
	assert.Contains(t, snapshot, "Nội khoa, Da liễu")
	assert.Contains(t, snapshot, "Máy siêu âm 4D")
	assert.Contains(t, snapshot, testClinic().Hotline)
}

func TestKnowledgeSnapshotPlaceholderOnFailure(t *testing.T) {
	docs := &fakeDoctorStore{err: errors.New("mongo down")}
	kb := NewKnowledgeBase(docs, &fakeEquipmentStore{}, testClinic(), nil)

	assert.Equal(t, placeholderKnowledge, kb.Snapshot(context.Background()))
}
