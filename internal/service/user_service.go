package service

import (
	"errors"
	"log"
	"time"

	"seedy/internal/model"
	"seedy/internal/pkg"
	"seedy/internal/repository/mysql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

// Mailer decouples outbound mail so tests can capture dispatches.
type Mailer func(to, subject, htmlBody string) error

type UserService struct {
	repo   *mysql.UserRepository
	tokens *pkg.TokenIssuer
	mail   Mailer
}

func NewUserService(repo *mysql.UserRepository, tokens *pkg.TokenIssuer, mail Mailer) *UserService {
	return &UserService{repo: repo, tokens: tokens, mail: mail}
}

// Register creates the account after one combined username-or-email
// duplicate check. No token is issued; the caller logs in separately.
func (s *UserService) Register(username, email, password, picture string) error {
	var fields []string
	if username == "" {
		fields = append(fields, "username")
	}
	if email == "" {
		fields = append(fields, "email")
	}
	if password == "" {
		fields = append(fields, "password")
	}
	if len(fields) > 0 {
		return missing(fields...)
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return err
	}
	if taken {
		return conflict("Username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Create(&model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Picture:  picture,
	})
}

// Login verifies the credential and issues a signed token. Missing user and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(username, password string) (string, model.PublicUser, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return "", model.PublicUser{}, &labeledError{"Invalid credentials", ErrUnauthorized}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", model.PublicUser{}, &labeledError{"Invalid credentials", ErrUnauthorized}
	}
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", model.PublicUser{}, err
	}
	return token, user.Public(), nil
}

func (s *UserService) CheckUsername(username string, ignoreUserID uint64) error {
	if username == "" {
		return missing("username")
	}
	taken, err := s.repo.UsernameTaken(username, ignoreUserID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("Username already exists")
	}
	return nil
}

func (s *UserService) CheckEmail(email string, ignoreUserID uint64) error {
	if email == "" {
		return missing("email")
	}
	taken, err := s.repo.EmailTaken(email, ignoreUserID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("Email already exists")
	}
	return nil
}

// ForgotPassword stores a 20-byte hex reset token with a 1-hour expiry and
// mails the raw token to the account's address.
func (s *UserService) ForgotPassword(email string) error {
	if email == "" {
		return missing("email")
	}
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("User not found")
		}
		return err
	}

	token, err := pkg.RandHexToken(20)
	if err != nil {
		return err
	}
	if err := s.repo.SetResetToken(user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}
	if err := s.mail(user.Email, "Reset Your Password at Seedy", pkg.ResetPasswordHTML(token)); err != nil {
		log.Printf("reset mail to %s failed: %v", user.Email, err)
		return err
	}
	return nil
}

// ResetPassword consumes a live token in one conditional update, so the
// expiry check and the clear cannot race apart and the token is single-use.
func (s *UserService) ResetPassword(token, newPassword string) error {
	var fields []string
	if token == "" {
		fields = append(fields, "token")
	}
	if newPassword == "" {
		fields = append(fields, "newPassword")
	}
	if len(fields) > 0 {
		return missing(fields...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	ok, err := s.repo.ConsumeResetToken(token, string(hash), time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return invalid("Expired token")
	}
	return nil
}

// ChangePassword is the authenticated variant; the caller comes from the
// verified token, not the request body.
func (s *UserService) ChangePassword(userID uint64, newPassword string) error {
	if newPassword == "" {
		return missing("newPassword")
	}
	if _, err := s.repo.FindByID(userID); err != nil {
		return notFound("User not found")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(userID, string(hash))
}

// EditProfile partially updates username/email/picture.
func (s *UserService) EditProfile(userID uint64, username, email, picture string) (*model.User, error) {
	if _, err := s.repo.FindByID(userID); err != nil {
		return nil, notFound("User not found")
	}
	fields := map[string]any{}
	if username != "" {
		fields["username"] = username
	}
	if email != "" {
		fields["email"] = email
	}
	if picture != "" {
		fields["picture"] = picture
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateProfile(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(userID)
}
