package workouts

var PageBounds = pageBounds
