package cancel_meeting

// CancelMeetingRequest HTTP request model
type CancelMeetingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// Reason возвращает причину отмены или пустую строку
func (r *CancelMeetingRequest) Reason() string {
	if r.CancellationReason == nil {
		return ""
	}
	return *r.CancellationReason
}
