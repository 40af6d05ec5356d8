package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"study-planner/controllers"
	"study-planner/driver"
	"study-planner/storage"
	"study-planner/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, reading configuration from environment")
	}
	if os.Getenv("SECRET") == "" {
		logrus.Warn("SECRET variable is not set, login responses will carry no token")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db := driver.ConnectDB()
	defer db.Close()

	if err := driver.RunMigrations(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	students := storage.NewStudentStore(db)
	courses := storage.NewCourseStore(db)
	assignments := storage.NewAssignmentStore(db)
	schedules := storage.NewScheduleStore(db)

	studentController := &controllers.StudentController{Students: students, Log: log}
	courseController := &controllers.CourseController{Courses: courses, Log: log}
	assignmentController := &controllers.AssignmentController{Assignments: assignments, Courses: courses, Log: log}
	scheduleController := &controllers.ScheduleController{Schedules: schedules, Courses: courses, Log: log}

	router := mux.NewRouter()
	router.Use(utils.RequestLogger(log))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	router.Handle("/login", studentController.LoginHandler())
	router.PathPrefix("/students").Handler(studentController.Handler())
	router.PathPrefix("/courses").Handler(courseController.Handler())
	router.PathPrefix("/assignments").Handler(assignmentController.Handler())
	router.PathPrefix("/schedules").Handler(scheduleController.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Infof("Server started on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
