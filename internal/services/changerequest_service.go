package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/pkg/mail"
	"github.com/sirupsen/logrus"
)

// ErrDuplicateEmployee indicates more than one Personnel row matched an
// EmployeeID that is supposed to be unique. The request cannot proceed.
var ErrDuplicateEmployee = errors.New("more than one matching individual")

// ChangeRequest is a personnel addition or change submitted by an HR user for
// admin review. It never mutates the store; admins apply it by hand.
type ChangeRequest struct {
	EmployeeID    string
	CubicleNumber string
	FirstName     string
	LastName      string
	Telephone     string
	Email         string
	Comments      string
}

// ChangeRequestService composes and delivers HR change-request notifications
// to every admin with an e-mail address on file.
type ChangeRequestService struct {
	personnelRepo *database.PersonnelRepository
	userRepo      *database.UserRepository
	mailer        mail.Mailer
	fallbackFrom  string
	logger        *logrus.Logger
}

// NewChangeRequestService creates a new change request service
func NewChangeRequestService(
	personnelRepo *database.PersonnelRepository,
	userRepo *database.UserRepository,
	mailer mail.Mailer,
	fallbackFrom string,
	logger *logrus.Logger,
) *ChangeRequestService {
	return &ChangeRequestService{
		personnelRepo: personnelRepo,
		userRepo:      userRepo,
		mailer:        mailer,
		fallbackFrom:  fallbackFrom,
		logger:        logger,
	}
}

// Submit notifies all admins of the request. The phrasing depends on whether
// the employee already exists: zero rows reads as a new hire, one row as an
// information change, and more than one is a data inconsistency that aborts.
func (s *ChangeRequestService) Submit(requester string, req *ChangeRequest) error {
	count, err := s.personnelRepo.CountByEmployeeID(req.EmployeeID)
	if err != nil {
		return err
	}

	var intro string
	switch count {
	case 0:
		intro = "It has been requested that the following employee be entered into the system:\n"
	case 1:
		intro = "It has been requested that the following person's information be changed to the following:\n"
	default:
		return ErrDuplicateEmployee
	}

	from, err := s.userRepo.EmailForUser(requester)
	if err != nil {
		return err
	}
	if from == "" {
		from = s.fallbackFrom
	}

	recipients, err := s.userRepo.AdminEmails()
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		s.logger.Warn("No admin accounts have an e-mail address; change request not delivered")
		return nil
	}

	reference := uuid.New().String()

	var body strings.Builder
	body.WriteString(intro)
	body.WriteString("EmployeeID: " + req.EmployeeID + "\n")
	body.WriteString("Cubicle Number: " + req.CubicleNumber + "\n")
	body.WriteString("First Name: " + req.FirstName + "\n")
	body.WriteString("Last Name: " + req.LastName + "\n")
	body.WriteString("Telephone: " + req.Telephone + "\n")
	body.WriteString("E-mail: " + req.Email + "\n")
	body.WriteString("Comments: " + req.Comments + "\n")
	body.WriteString("Reference: " + reference + "\n")

	msg := mail.Message{
		From:    from,
		To:      recipients,
		Subject: "Personnel Addition",
		Body:    body.String(),
	}

	if err := s.mailer.Send(msg); err != nil {
		return fmt.Errorf("failed to deliver change request: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"requester":  requester,
		"employee":   req.EmployeeID,
		"reference":  reference,
		"recipients": len(recipients),
		"mailer":     s.mailer.GetName(),
	}).Info("Change request delivered")

	return nil
}
