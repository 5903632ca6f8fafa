package comments

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/user/blogapi-go/apperror"
)

func TestCommentInsertError(t *testing.T) {
	t.Run("post fk violation is not found", func(t *testing.T) {
		err := commentInsertError(&pgconn.PgError{
			Code:           pgForeignKeyViolation,
			ConstraintName: "comments_post_id_fkey",
		})
		assert.True(t, apperror.IsNotFound(err))
		assert.Equal(t, "Post not found", err.Error())
	})

	t.Run("user fk violation stays internal", func(t *testing.T) {
		// The commenting user being deleted mid-request must not be
		// reported as a missing post.
		err := commentInsertError(&pgconn.PgError{
			Code:           pgForeignKeyViolation,
			ConstraintName: "comments_user_id_fkey",
		})
		assert.False(t, apperror.IsNotFound(err))

		appErr, ok := apperror.FromError(err)
		assert.True(t, ok)
		assert.Equal(t, apperror.DatabaseError, appErr.Type)
	})

	t.Run("other errors stay internal", func(t *testing.T) {
		err := commentInsertError(errors.New("connection reset"))
		assert.False(t, apperror.IsNotFound(err))
	})
}
